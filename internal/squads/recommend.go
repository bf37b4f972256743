package squads

import (
	"fmt"
	"sort"
	"strings"
)

// Recommendation names the best-fit squad preset with a human-readable
// justification.
type Recommendation struct {
	SquadID string  `json:"squadId"`
	Name    string  `json:"name,omitempty"`
	Reason  string  `json:"reason"`
	Score   float64 `json:"score"`
}

// Minimum class strength for a class to appear in the narrative reason.
const narrativeStrength = 3.0

// Recommend scores each preset against the user's per-class strength
// profile and returns the best fit, or nil when the mode has no presets
// configured. The result is always one of the configured squad ids.
func Recommend(presets []Preset, classStrengths map[string]float64) *Recommendation {
	if len(presets) == 0 {
		return nil
	}

	var best *Recommendation
	for _, preset := range presets {
		score := presetScore(preset, classStrengths)
		if best == nil || score > best.Score {
			best = &Recommendation{
				SquadID: preset.SquadID,
				Name:    preset.Name,
				Reason:  presetReason(preset, classStrengths),
				Score:   score,
			}
		}
	}
	return best
}

// presetScore sums, over classes the user has any strength in, the class
// strength times the preset's benefit for that class. Benefit rewards
// below-max six-star hope costs and free promotion.
func presetScore(preset Preset, classStrengths map[string]float64) float64 {
	total := 0.0
	for class, strength := range classStrengths {
		if strength <= 0 {
			continue
		}
		total += strength * classBenefit(preset, class)
	}
	return total
}

func classBenefit(preset Preset, class string) float64 {
	benefit := float64(maxHopeCost-preset.SixStarHopeCost(class)) * 0.5
	if preset.IsAutoPromoted(class) {
		benefit += 1.5
	}
	return benefit
}

// presetReason builds the narrative: which of the user's strong classes
// get free promotion or discounted recruitment from this preset.
func presetReason(preset Preset, classStrengths map[string]float64) string {
	var promoted, discounted []string
	for class, strength := range classStrengths {
		if strength < narrativeStrength {
			continue
		}
		if preset.IsAutoPromoted(class) {
			promoted = append(promoted, class)
		}
		if preset.SixStarHopeCost(class) < maxHopeCost {
			discounted = append(discounted, class)
		}
	}
	sort.Strings(promoted)
	sort.Strings(discounted)

	var parts []string
	if len(promoted) > 0 {
		parts = append(parts, fmt.Sprintf("free promotion for %s", strings.Join(promoted, ", ")))
	}
	if len(discounted) > 0 {
		parts = append(parts, fmt.Sprintf("cheaper recruitment for %s", strings.Join(discounted, ", ")))
	}
	if len(parts) == 0 {
		return "best overall fit for your roster"
	}
	return "offers " + strings.Join(parts, " and ")
}
