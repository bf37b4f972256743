package gamedata

import (
	"encoding/json"
	"fmt"
)

// Tier is a letter rating of how well an operator performs a niche.
type Tier string

const (
	TierSS Tier = "SS"
	TierS  Tier = "S"
	TierA  Tier = "A"
	TierB  Tier = "B"
	TierC  Tier = "C"
	TierD  Tier = "D"
	TierF  Tier = "F"
)

// tierOrder lists tiers best-first. Rank and value derive from it.
var tierOrder = []Tier{TierSS, TierS, TierA, TierB, TierC, TierD, TierF}

const unknownTierRank = 1 << 30

// Rank returns the position of the tier in the best-first order.
// Unknown tier codes rank worse than every known code.
func (t Tier) Rank() int {
	for i, known := range tierOrder {
		if t == known {
			return i
		}
	}
	return unknownTierRank
}

// Value returns the numeric strength of the tier, SS=7 down to F=1.
// Unknown tiers are worth 0.
func (t Tier) Value() int {
	rank := t.Rank()
	if rank >= len(tierOrder) {
		return 0
	}
	return len(tierOrder) - rank
}

// Operator is immutable reference data for one playable operator.
type Operator struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	NameVariants map[string]string `json:"nameVariants,omitempty"`
	Rarity       int               `json:"rarity"`
	Class        string            `json:"class"`
	Global       bool              `json:"global"`
	ImageKey     string            `json:"imageKey,omitempty"`
}

// The eight operator classes.
const (
	ClassVanguard   = "Vanguard"
	ClassGuard      = "Guard"
	ClassDefender   = "Defender"
	ClassSniper     = "Sniper"
	ClassCaster     = "Caster"
	ClassMedic      = "Medic"
	ClassSupporter  = "Supporter"
	ClassSpecialist = "Specialist"
)

// Entry records one operator's membership in a niche tier. Level is the
// prerequisite at which the rating applies: empty means always, "E2" means
// at Elite-2 promotion, any other value is a module code.
type Entry struct {
	OperatorID string `json:"operatorId"`
	Note       string `json:"note,omitempty"`
	Level      string `json:"level,omitempty"`
}

// Evaluation is one (tier, level) rating of an operator within a niche.
type Evaluation struct {
	Tier  Tier   `json:"tier"`
	Level string `json:"level,omitempty"`
}

// Niche is a named operator role tag with a tier list of members.
type Niche struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Tiers       map[Tier][]Entry `json:"tiers"`
}

// rawEntry accepts the two on-disk entry shapes: a bare note string, or a
// two-element [note, level] array. Both normalize to Entry.
type rawEntry struct {
	Note  string
	Level string
}

func (e *rawEntry) UnmarshalJSON(data []byte) error {
	var note string
	if err := json.Unmarshal(data, &note); err == nil {
		e.Note = note
		e.Level = ""
		return nil
	}

	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("niche entry must be a string or [note, level] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("niche entry pair must have 2 elements, got %d", len(pair))
	}
	e.Note = pair[0]
	e.Level = pair[1]
	return nil
}

// nicheFile is the on-disk shape of one niche definition.
type nicheFile struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Tiers       map[string]map[string]rawEntry `json:"tiers"`
}

func (f nicheFile) toNiche(code string) (Niche, error) {
	niche := Niche{
		Code:        code,
		Name:        f.Name,
		Description: f.Description,
		Tiers:       make(map[Tier][]Entry, len(f.Tiers)),
	}
	for rawTier, members := range f.Tiers {
		tier := Tier(rawTier)
		if tier.Rank() == unknownTierRank {
			return Niche{}, fmt.Errorf("niche %s: unknown tier %q", code, rawTier)
		}
		entries := make([]Entry, 0, len(members))
		for operatorID, raw := range members {
			entries = append(entries, Entry{
				OperatorID: operatorID,
				Note:       raw.Note,
				Level:      raw.Level,
			})
		}
		niche.Tiers[tier] = entries
	}
	return niche, nil
}
