package teambuilder

// Niche codes that never contribute to candidate scoring. dual-dps is
// excluded because its value is fully absorbed by the two niches it derives.
var excludedNiches = map[string]struct{}{
	"free":                  {},
	"soloists":              {},
	"enmity_healers":        {},
	"unconventional_niches": {},
	"dual-dps":              {},
}

// AoE variants score as their corresponding dps niche.
var normalizedNiches = map[string]string{
	"arts_aoe": "arts-dps",
	"phys_aoe": "physical-dps",
}

const (
	requiredFullValue    = 100.0
	requiredOverPenalty  = 50.0
	preferredFullValue   = 50.0
	preferredOverPenalty = 25.0
	wantToUseBonus       = 50.0
)

// scoringNiches returns the candidate's niches after exclusion and aoe
// normalization, deduplicated so a niche is scored at most once even when
// both the specific and normalized tag are present.
func scoringNiches(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, code := range raw {
		if _, excluded := excludedNiches[code]; excluded {
			continue
		}
		if normalized, ok := normalizedNiches[code]; ok {
			code = normalized
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

// quotaValue scores adding one member to a niche currently at count against
// a [min,max] range: full value while still under min, linearly diminishing
// from full (at min) to zero (at max), and a proportional penalty past max.
func quotaValue(r Range, count int, full, overPenalty float64) float64 {
	post := count + 1
	if post < r.Min {
		return full
	}
	if post > r.Max {
		return -overPenalty * float64(post-r.Max)
	}
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	return full * float64(r.Max-post) / float64(span)
}

// rarityBonus rewards rarities by their position in the priority ranking,
// first place worth 60 and each later place 10 less. Unranked rarities get
// nothing.
func rarityBonus(priority []int, rarity int) float64 {
	for i, r := range priority {
		if r == rarity {
			bonus := 60.0 - 10.0*float64(i)
			if bonus < 0 {
				return 0
			}
			return bonus
		}
	}
	return 0
}

// scoreCandidate values one candidate against the current coverage counts.
func (b *Builder) scoreCandidate(cand candidate, coverage map[string]int, prefs Preferences) float64 {
	total := 0.0
	for _, niche := range cand.niches {
		if r, ok := prefs.Required[niche]; ok {
			total += quotaValue(r, coverage[niche], requiredFullValue, requiredOverPenalty)
			continue
		}
		if r, ok := prefs.Preferred[niche]; ok {
			total += quotaValue(r, coverage[niche], preferredFullValue, preferredOverPenalty)
		}
	}
	total += rarityBonus(prefs.RarityPriority, cand.op.Rarity)
	if cand.wanted {
		total += wantToUseBonus
	}
	return total
}
