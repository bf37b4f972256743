package squads

import (
	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/weights"
)

// The four fixed class pairings processed by the strength computation.
var classPairings = [4][2]string{
	{gamedata.ClassVanguard, gamedata.ClassGuard},
	{gamedata.ClassDefender, gamedata.ClassSupporter},
	{gamedata.ClassSniper, gamedata.ClassMedic},
	{gamedata.ClassCaster, gamedata.ClassSpecialist},
}

const (
	perClassLimit = 3
	trashPenalty  = 1000.0
)

// ClassStrengths profiles how strong the user's roster is per operator
// class. Each pairing greedily assembles a combined sub-team of up to
// perClassLimit members from each class and assigns the same per-member
// score to both classes in the pairing.
func ClassStrengths(snapshot *gamedata.Snapshot, pools weights.Pools, ownedIDs []string) map[string]float64 {
	trash := snapshot.TrashOperators()
	byClass := groupOwnedByClass(snapshot, ownedIDs)

	strengths := make(map[string]float64, 8)
	for _, pairing := range classPairings {
		classA, classB := pairing[0], pairing[1]
		poolA, poolB := byClass[classA], byClass[classB]

		scoreAB, sizeAB := buildPairTeam(snapshot, pools, trash, poolA, poolB)
		scoreBA, sizeBA := buildPairTeam(snapshot, pools, trash, poolB, poolA)
		score, size := scoreAB, sizeAB
		if scoreBA > score {
			score, size = scoreBA, sizeBA
		}

		strength := 0.0
		if size > 0 {
			strength = score / float64(size)
		}
		strengths[classA] = strength
		strengths[classB] = strength
	}
	return strengths
}

type pairCandidate struct {
	id    string
	class string
	used  bool
}

// buildPairTeam greedily adds whichever remaining candidate maximizes the
// combined team score, scanning the first pool before the second so ties
// resolve by encounter order. Each class contributes at most perClassLimit
// members.
func buildPairTeam(snapshot *gamedata.Snapshot, pools weights.Pools, trash map[string]struct{}, first, second []pairCandidate) (float64, int) {
	candidates := make([]pairCandidate, 0, len(first)+len(second))
	candidates = append(candidates, first...)
	candidates = append(candidates, second...)

	classCounts := make(map[string]int, 2)
	team := make([]string, 0, 2*perClassLimit)
	score := 0.0

	for {
		bestIdx := -1
		bestScore := 0.0
		for i := range candidates {
			cand := &candidates[i]
			if cand.used || classCounts[cand.class] >= perClassLimit {
				continue
			}
			next := teamScore(snapshot, pools, trash, append(team, cand.id))
			if bestIdx < 0 || next > bestScore {
				bestIdx = i
				bestScore = next
			}
		}
		if bestIdx < 0 {
			return score, len(team)
		}
		picked := &candidates[bestIdx]
		picked.used = true
		classCounts[picked.class]++
		team = append(team, picked.id)
		score = bestScore
	}
}

// teamScore values a sub-team as, for every niche classified by any weight
// pool, the best tier any member achieves in that niche times the niche's
// pool weight, summed, minus a flat penalty per trash member. Coverage is
// not summed across members: only the peak matters.
func teamScore(snapshot *gamedata.Snapshot, pools weights.Pools, trash map[string]struct{}, team []string) float64 {
	total := 0.0
	for _, niche := range pools.NicheCodes() {
		best := 0
		for _, id := range team {
			if tier := snapshot.TierOf(id, niche); tier > best {
				best = tier
			}
		}
		total += float64(best) * pools.ScoreFor(niche)
	}
	for _, id := range team {
		if _, isTrash := trash[id]; isTrash {
			total -= trashPenalty
		}
	}
	return total
}

func groupOwnedByClass(snapshot *gamedata.Snapshot, ownedIDs []string) map[string][]pairCandidate {
	out := make(map[string][]pairCandidate)
	seen := make(map[string]struct{}, len(ownedIDs))
	for _, id := range ownedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		op, ok := snapshot.Operator(id)
		if !ok {
			continue
		}
		out[op.Class] = append(out[op.Class], pairCandidate{id: id, class: op.Class})
	}
	return out
}
