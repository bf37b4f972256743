// Package advisor recommends a single additional operator for a partial
// Integrated Strategies team. Its scoring table is deliberately separate
// from the normal-mode team builder's: the two evolved for different
// integration points and their magnitudes are product behavior, not shared
// constants.
package advisor

import (
	"fmt"
	"strings"

	"arknights-backend/internal/gamedata"
)

// Range bounds how many team members should cover a niche.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Niche codes the advisor never scores.
var excludedNiches = map[string]struct{}{
	"free":                  {},
	"unconventional-niches": {},
	"fragile":               {},
	"enmity-healing":        {},
	"sleep":                 {},
	"global-range":          {},
}

// The fixed niche table the advisor scores against. Unlike the team
// builder, these are not user preferences: the advisor is a quick aid with
// an opinionated default composition.
var (
	defaultRequired = map[string]Range{
		"healing":       {Min: 1, Max: 2},
		"tanking":       {Min: 1, Max: 2},
		"dp-generation": {Min: 1, Max: 2},
		"arts-dps":      {Min: 1, Max: 2},
		"physical-dps":  {Min: 1, Max: 2},
	}
	defaultPreferred = map[string]Range{
		"def-shred":     {Min: 1, Max: 1},
		"res-shred":     {Min: 1, Max: 1},
		"crowd-control": {Min: 1, Max: 2},
		"fast-redeploy": {Min: 1, Max: 1},
		"buffing":       {Min: 1, Max: 2},
	}
)

const (
	requiredFillScore      = 100.0
	requiredStrengthScore  = 50.0
	requiredOverScore      = 10.0
	preferredFillScore     = 75.0
	preferredStrengthScore = 30.0
	preferredOverScore     = 5.0
	varietyScore           = 15.0
	saturationPenalty      = 20.0
	saturationThreshold    = 3
	multiNicheBonus        = 25.0
	rarityFactor           = 10.0
)

// Recommendation is the advisor's answer. Operator is nil when no
// candidate qualifies; Reasoning always explains the outcome.
type Recommendation struct {
	Operator  *gamedata.Operator `json:"operator"`
	Reasoning string             `json:"reasoning"`
	Score     float64            `json:"score"`
}

// RecommendNext scores every raised operator of the requested classes that
// is not already on the team and returns the best one. ExtraID, when
// non-empty, is treated as raised for this call only (previewing a recruit
// before committing). Ties keep the earliest candidate.
func RecommendNext(snapshot *gamedata.Snapshot, raisedIDs, teamIDs []string, classes []string, extraID string) Recommendation {
	pool := candidatePool(snapshot, raisedIDs, teamIDs, classes, extraID)
	if len(pool) == 0 {
		return Recommendation{
			Operator:  nil,
			Reasoning: "no raised operators of the requested classes are available",
			Score:     0,
		}
	}

	coverage := teamCoverage(snapshot, teamIDs)

	var best *gamedata.Operator
	bestScore := 0.0
	bestReasons := []string(nil)
	for i := range pool {
		op := pool[i]
		score, reasons := scoreCandidate(snapshot, op, coverage)
		if best == nil || score > bestScore {
			best = &pool[i]
			bestScore = score
			bestReasons = reasons
		}
	}

	return Recommendation{
		Operator:  best,
		Reasoning: formatReasons(best.Name, bestReasons),
		Score:     bestScore,
	}
}

func candidatePool(snapshot *gamedata.Snapshot, raisedIDs, teamIDs []string, classes []string, extraID string) []gamedata.Operator {
	onTeam := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		onTeam[id] = struct{}{}
	}
	wantedClass := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		wantedClass[class] = struct{}{}
	}

	ids := raisedIDs
	if extraID != "" && !contains(raisedIDs, extraID) {
		ids = append(append([]string{}, raisedIDs...), extraID)
	}

	seen := make(map[string]struct{}, len(ids))
	pool := make([]gamedata.Operator, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, taken := onTeam[id]; taken {
			continue
		}
		op, ok := snapshot.Operator(id)
		if !ok {
			continue
		}
		if len(wantedClass) > 0 {
			if _, ok := wantedClass[op.Class]; !ok {
				continue
			}
		}
		pool = append(pool, op)
	}
	return pool
}

func teamCoverage(snapshot *gamedata.Snapshot, teamIDs []string) map[string]int {
	coverage := make(map[string]int)
	for _, id := range teamIDs {
		for _, niche := range snapshot.NichesForOperator(id) {
			coverage[niche]++
		}
	}
	return coverage
}

func scoreCandidate(snapshot *gamedata.Snapshot, op gamedata.Operator, coverage map[string]int) (float64, []string) {
	score := float64(op.Rarity) * rarityFactor
	reasons := []string{fmt.Sprintf("%d-star rarity", op.Rarity)}

	usefulNiches := 0
	for _, niche := range snapshot.NichesForOperator(op.ID) {
		if _, excluded := excludedNiches[niche]; excluded {
			continue
		}
		count := coverage[niche]

		switch {
		case isKnown(defaultRequired, niche):
			usefulNiches++
			r := defaultRequired[niche]
			switch {
			case count == 0:
				score += requiredFillScore
				reasons = append(reasons, fmt.Sprintf("fills the missing %s role", niche))
			case count < r.Max:
				score += requiredStrengthScore
				reasons = append(reasons, fmt.Sprintf("strengthens %s", niche))
			default:
				score += requiredOverScore
			}
		case isKnown(defaultPreferred, niche):
			usefulNiches++
			r := defaultPreferred[niche]
			switch {
			case count == 0:
				score += preferredFillScore
				reasons = append(reasons, fmt.Sprintf("adds %s coverage", niche))
			case count < r.Max:
				score += preferredStrengthScore
			default:
				score += preferredOverScore
			}
		default:
			score += varietyScore
		}

		if count >= saturationThreshold {
			score -= saturationPenalty
		}
	}

	if usefulNiches > 1 {
		score += float64(usefulNiches-1) * multiNicheBonus
		reasons = append(reasons, fmt.Sprintf("covers %d core roles", usefulNiches))
	}
	return score, reasons
}

func isKnown(table map[string]Range, niche string) bool {
	_, ok := table[niche]
	return ok
}

func formatReasons(name string, reasons []string) string {
	if len(reasons) == 0 {
		return name + " is the best available pick"
	}
	return name + ": " + strings.Join(reasons, "; ")
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
