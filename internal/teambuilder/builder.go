package teambuilder

import (
	"fmt"
	"sort"

	"arknights-backend/internal/gamedata"
)

// Builder assembles a fixed-size team from a user's owned operators. It is
// a pure computation over the snapshot it was constructed with: no I/O, no
// shared mutable state.
type Builder struct {
	snapshot *gamedata.Snapshot
	trash    map[string]struct{}
}

// NewBuilder wires a builder to a data snapshot and a set of operator ids
// flagged as having no competitive use.
func NewBuilder(snapshot *gamedata.Snapshot, trash map[string]struct{}) *Builder {
	if trash == nil {
		trash = map[string]struct{}{}
	}
	return &Builder{snapshot: snapshot, trash: trash}
}

type candidate struct {
	op     gamedata.Operator
	niches []string
	wanted bool
	trash  bool
	used   bool
}

// quotaPass is one step of the selection pipeline: which niche map it walks
// and whether it tops niches up to min or max.
type quotaPass struct {
	required bool
	toMax    bool
}

// The four quota passes run in this exact order; the filler pass follows.
var quotaPasses = []quotaPass{
	{required: true, toMax: false},
	{required: true, toMax: true},
	{required: false, toMax: false},
	{required: false, toMax: true},
}

// Build selects up to TeamSize operators satisfying the preference quotas.
// Unknown operator ids are skipped. An empty owned pool returns an empty
// team with every required niche missing and score zero.
func (b *Builder) Build(ownedIDs, wantToUseIDs []string, prefs Preferences) Result {
	candidates := b.collectCandidates(ownedIDs, wantToUseIDs)
	coverage := make(map[string]int)
	team := make([]Member, 0, TeamSize)

	if len(candidates) == 0 {
		return Result{
			Team:          team,
			Coverage:      coverage,
			MissingNiches: allMissing(prefs.Required),
			Score:         0,
		}
	}

	for _, pass := range quotaPasses {
		b.runQuotaPass(pass, prefs, candidates, &team, coverage)
	}
	if !b.allQuotasAtMax(prefs, coverage) {
		b.runFillerPass(prefs, candidates, &team, coverage)
	}

	return Result{
		Team:          team,
		Coverage:      coverage,
		MissingNiches: missingNiches(prefs.Required, coverage),
		Score:         aggregateScore(prefs, coverage, len(team)),
	}
}

// collectCandidates resolves owned ids against the snapshot, skipping ids
// the snapshot does not know. Team membership is unique per operator, so
// duplicate ids collapse regardless of the duplicate-allowance flag.
func (b *Builder) collectCandidates(ownedIDs, wantToUseIDs []string) []*candidate {
	wanted := make(map[string]struct{}, len(wantToUseIDs))
	for _, id := range wantToUseIDs {
		wanted[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ownedIDs))
	out := make([]*candidate, 0, len(ownedIDs))
	for _, id := range ownedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		op, ok := b.snapshot.Operator(id)
		if !ok {
			continue
		}
		_, isTrash := b.trash[id]
		_, isWanted := wanted[id]
		out = append(out, &candidate{
			op:     op,
			niches: scoringNiches(b.snapshot.NichesForOperator(id)),
			wanted: isWanted,
			trash:  isTrash,
		})
	}
	return out
}

func (b *Builder) runQuotaPass(pass quotaPass, prefs Preferences, candidates []*candidate, team *[]Member, coverage map[string]int) {
	quotas := prefs.Required
	if !pass.required {
		quotas = prefs.Preferred
	}
	for _, niche := range sortedKeys(quotas) {
		r := quotas[niche]
		target := r.Min
		if pass.toMax {
			target = r.Max
		}
		for len(*team) < TeamSize && coverage[niche] < target {
			picked := b.pickBestFor(niche, prefs, candidates, coverage)
			if picked == nil {
				break
			}
			b.addToTeam(picked, niche, team, coverage)
		}
	}
}

// pickBestFor chooses the highest-scoring unused candidate covering the
// niche. Trash-flagged candidates are only eligible when no non-trash
// candidate covers the niche. Ties keep the earliest candidate.
func (b *Builder) pickBestFor(niche string, prefs Preferences, candidates []*candidate, coverage map[string]int) *candidate {
	best := b.pickBest(prefs, candidates, coverage, func(cand *candidate) bool {
		return !cand.trash && candidateCovers(cand, niche)
	})
	if best != nil {
		return best
	}
	return b.pickBest(prefs, candidates, coverage, func(cand *candidate) bool {
		return cand.trash && candidateCovers(cand, niche)
	})
}

func (b *Builder) pickBest(prefs Preferences, candidates []*candidate, coverage map[string]int, eligible func(*candidate) bool) *candidate {
	var best *candidate
	bestScore := 0.0
	for _, cand := range candidates {
		if cand.used || !eligible(cand) {
			continue
		}
		score := b.scoreCandidate(*cand, coverage, prefs)
		if best == nil || score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

func (b *Builder) runFillerPass(prefs Preferences, candidates []*candidate, team *[]Member, coverage map[string]int) {
	for len(*team) < TeamSize {
		picked := b.pickBest(prefs, candidates, coverage, func(cand *candidate) bool {
			return !cand.trash
		})
		if picked == nil {
			picked = b.pickBest(prefs, candidates, coverage, func(cand *candidate) bool {
				return cand.trash
			})
		}
		if picked == nil {
			return
		}
		b.addToTeam(picked, "", team, coverage)
	}
}

func (b *Builder) addToTeam(cand *candidate, selectedFor string, team *[]Member, coverage map[string]int) {
	cand.used = true
	for _, niche := range cand.niches {
		coverage[niche]++
	}
	*team = append(*team, Member{
		OperatorID:  cand.op.ID,
		Niches:      cand.niches,
		SelectedFor: selectedFor,
	})
}

// allQuotasAtMax reports whether every required and preferred niche reached
// its max. When true, remaining slots stay empty instead of taking filler.
func (b *Builder) allQuotasAtMax(prefs Preferences, coverage map[string]int) bool {
	if len(prefs.Required) == 0 && len(prefs.Preferred) == 0 {
		return false
	}
	for niche, r := range prefs.Required {
		if coverage[niche] < r.Max {
			return false
		}
	}
	for niche, r := range prefs.Preferred {
		if coverage[niche] < r.Max {
			return false
		}
	}
	return true
}

func candidateCovers(cand *candidate, niche string) bool {
	for _, code := range cand.niches {
		if code == niche {
			return true
		}
	}
	return false
}

// allMissing lists every required niche as unmet, used for the empty-pool
// early return.
func allMissing(required map[string]Range) []MissingNiche {
	out := make([]MissingNiche, 0, len(required))
	for _, niche := range sortedKeys(required) {
		r := required[niche]
		out = append(out, MissingNiche{
			NicheCode: niche,
			Shortfall: r.Min,
			Note:      fmt.Sprintf("%s: 0/%d", niche, r.Min),
		})
	}
	return out
}

func missingNiches(required map[string]Range, coverage map[string]int) []MissingNiche {
	out := make([]MissingNiche, 0)
	for _, niche := range sortedKeys(required) {
		r := required[niche]
		count := coverage[niche]
		if count >= r.Min {
			continue
		}
		out = append(out, MissingNiche{
			NicheCode: niche,
			Shortfall: r.Min - count,
			Note:      fmt.Sprintf("%s: %d/%d", niche, count, r.Min),
		})
	}
	return out
}

const (
	requiredMetScore    = 100.0
	requiredIdealBonus  = 20.0
	preferredMetScore   = 50.0
	preferredIdealBonus = 30.0
	slotScore           = 10.0
)

// aggregateScore grades the final team: full credit per satisfied required
// minimum with a bonus for staying within the ideal max, proportional
// partial credit below the minimum, the analogous half-scale grades for
// preferred niches, and a small reward per filled slot.
func aggregateScore(prefs Preferences, coverage map[string]int, teamLen int) float64 {
	score := quotaScore(prefs.Required, coverage, requiredMetScore, requiredIdealBonus)
	score += quotaScore(prefs.Preferred, coverage, preferredMetScore, preferredIdealBonus)
	score += slotScore * float64(teamLen)
	return score
}

func quotaScore(quotas map[string]Range, coverage map[string]int, met, idealBonus float64) float64 {
	total := 0.0
	for niche, r := range quotas {
		count := coverage[niche]
		switch {
		case r.Min <= 0 || count >= r.Min:
			total += met
			if count <= r.Max {
				total += idealBonus
			}
		default:
			total += met * float64(count) / float64(r.Min)
		}
	}
	return total
}

func sortedKeys(m map[string]Range) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
