package teambuilder

// TeamSize is the fixed roster size built in normal mode.
const TeamSize = 12

// Range bounds how many team members should cover a niche.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Preferences is the user-supplied input to Build. Zero value means no
// quotas and no rarity preference.
type Preferences struct {
	Required        map[string]Range `json:"requiredNiches"`
	Preferred       map[string]Range `json:"preferredNiches"`
	RarityPriority  []int            `json:"rarityPriority"`
	AllowDuplicates bool             `json:"allowDuplicates"`
}

// Member is one selected operator with the niches it covers and, when it
// was picked to satisfy a quota, the niche it was selected for.
type Member struct {
	OperatorID  string   `json:"operatorId"`
	Niches      []string `json:"niches"`
	SelectedFor string   `json:"selectedFor,omitempty"`
}

// MissingNiche reports a required niche still below its minimum.
type MissingNiche struct {
	NicheCode string `json:"nicheCode"`
	Shortfall int    `json:"shortfall"`
	Note      string `json:"note"`
}

// Result is the builder's sole output artifact. Team ordering is
// significant and deterministic.
type Result struct {
	Team          []Member       `json:"team"`
	Coverage      map[string]int `json:"coverage"`
	MissingNiches []MissingNiche `json:"missingNiches"`
	Score         float64        `json:"score"`
}
