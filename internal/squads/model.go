package squads

import "context"

// Preset is one admin-configured squad bundle for an Integrated Strategies
// mode variant: recruit hope costs and promotion costs per rarity per
// class, plus the classes the squad promotes for free.
type Preset struct {
	ISID          string                    `json:"isId"`
	SquadID       string                    `json:"squadId"`
	Name          string                    `json:"name"`
	HopeCost      map[int]map[string]int    `json:"hopeCost"`
	PromotionCost map[int]map[string]int    `json:"promotionCost"`
	AutoPromoted  []string                  `json:"autoPromoted"`
}

// SixStarHopeCost returns the recruit hope cost of a six-star operator of
// the given class, or the maximum cost when the table has no entry.
func (p Preset) SixStarHopeCost(class string) int {
	if byClass, ok := p.HopeCost[6]; ok {
		if cost, ok := byClass[class]; ok {
			return cost
		}
	}
	return maxHopeCost
}

// IsAutoPromoted reports whether the squad promotes the class for free.
func (p Preset) IsAutoPromoted(class string) bool {
	for _, c := range p.AutoPromoted {
		if c == class {
			return true
		}
	}
	return false
}

const maxHopeCost = 6

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "no squad presets for mode" }

// Repo persists the admin-editable squad presets, keyed by IS mode id.
type Repo interface {
	ListByIS(ctx context.Context, isID string) ([]Preset, error)
	SaveForIS(ctx context.Context, isID string, presets []Preset) error
}
