package gamedata

import "sort"

// Niche codes with hard-coded derivation rules. Membership in the key niche
// implies membership in every value niche. The rules do not chain.
var derivedNiches = map[string][]string{
	"fragile":  {"def-shred", "res-shred"},
	"dual-dps": {"arts-dps", "physical-dps"},
}

// Snapshot is an immutable view of the static game data. Engines take a
// Snapshot by value at call time and never see a partially reloaded state.
type Snapshot struct {
	operators map[string]Operator
	niches    map[string]Niche

	// operatorID -> sorted niche codes, derived closure applied
	membership map[string][]string
	// operatorID -> nicheCode -> all evaluations found for the pair
	evaluations map[string]map[string][]Evaluation
}

// NewSnapshot indexes the given operators and niches for lookup.
func NewSnapshot(operators []Operator, niches []Niche) *Snapshot {
	s := &Snapshot{
		operators:   make(map[string]Operator, len(operators)),
		niches:      make(map[string]Niche, len(niches)),
		membership:  make(map[string][]string),
		evaluations: make(map[string]map[string][]Evaluation),
	}
	for _, op := range operators {
		s.operators[op.ID] = op
	}
	for _, niche := range niches {
		s.niches[niche.Code] = niche
	}
	s.buildIndexes()
	return s
}

func (s *Snapshot) buildIndexes() {
	direct := make(map[string]map[string]struct{})
	for code, niche := range s.niches {
		for tier, entries := range niche.Tiers {
			for _, entry := range entries {
				if direct[entry.OperatorID] == nil {
					direct[entry.OperatorID] = make(map[string]struct{})
				}
				direct[entry.OperatorID][code] = struct{}{}

				byNiche := s.evaluations[entry.OperatorID]
				if byNiche == nil {
					byNiche = make(map[string][]Evaluation)
					s.evaluations[entry.OperatorID] = byNiche
				}
				byNiche[code] = append(byNiche[code], Evaluation{Tier: tier, Level: entry.Level})
			}
		}
	}

	for operatorID, codes := range direct {
		closed := make(map[string]struct{}, len(codes)+4)
		for code := range codes {
			closed[code] = struct{}{}
			for _, implied := range derivedNiches[code] {
				closed[implied] = struct{}{}
			}
		}
		sorted := make([]string, 0, len(closed))
		for code := range closed {
			sorted = append(sorted, code)
		}
		sort.Strings(sorted)
		s.membership[operatorID] = sorted
	}
}

// Operator returns the operator with the given id.
func (s *Snapshot) Operator(id string) (Operator, bool) {
	op, ok := s.operators[id]
	return op, ok
}

// Operators returns all operators sorted by id.
func (s *Snapshot) Operators() []Operator {
	out := make([]Operator, 0, len(s.operators))
	for _, op := range s.operators {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Niche returns the niche with the given code.
func (s *Snapshot) Niche(code string) (Niche, bool) {
	niche, ok := s.niches[code]
	return niche, ok
}

// NicheCodes returns all niche codes sorted.
func (s *Snapshot) NicheCodes() []string {
	out := make([]string, 0, len(s.niches))
	for code := range s.niches {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// NichesForOperator returns the sorted niche codes the operator qualifies
// for, with the derived-niche closure applied. Unknown operators get an
// empty set, never an error.
func (s *Snapshot) NichesForOperator(operatorID string) []string {
	codes := s.membership[operatorID]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// TierOf returns the numeric tier value (SS=7 .. F=1) of the operator's
// peak evaluation within the niche, or 0 when the operator is not rated
// there. Derived membership carries the source niche's evaluations.
func (s *Snapshot) TierOf(operatorID, nicheCode string) int {
	peak, ok := s.peakIn(operatorID, nicheCode)
	if !ok {
		return 0
	}
	return peak.Tier.Value()
}

func (s *Snapshot) peakIn(operatorID, nicheCode string) (Evaluation, bool) {
	byNiche := s.evaluations[operatorID]
	if byNiche == nil {
		return Evaluation{}, false
	}
	if evals := byNiche[nicheCode]; len(evals) > 0 {
		return PeakOf(evals)
	}
	// A derived niche inherits the evaluations of its source niche.
	for source, implied := range derivedNiches {
		for _, code := range implied {
			if code != nicheCode {
				continue
			}
			if evals := byNiche[source]; len(evals) > 0 {
				return PeakOf(evals)
			}
		}
	}
	return Evaluation{}, false
}

// TrashOperators returns the ids of operators present in the data but
// absent from every niche tier list. They are heavily deprioritized by the
// recommendation engines, never hard-excluded.
func (s *Snapshot) TrashOperators() map[string]struct{} {
	out := make(map[string]struct{})
	for id := range s.operators {
		if len(s.membership[id]) == 0 {
			out[id] = struct{}{}
		}
	}
	return out
}

// Ranking is an operator's peak evaluation within one niche.
type Ranking struct {
	NicheCode string `json:"nicheCode"`
	Tier      Tier   `json:"tier"`
	Level     string `json:"level,omitempty"`
}

// OperatorRankings returns the operator's peak evaluation per direct niche,
// sorted by niche code.
func (s *Snapshot) OperatorRankings(operatorID string) []Ranking {
	byNiche := s.evaluations[operatorID]
	if len(byNiche) == 0 {
		return nil
	}
	codes := make([]string, 0, len(byNiche))
	for code := range byNiche {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]Ranking, 0, len(codes))
	for _, code := range codes {
		peak, ok := PeakOf(byNiche[code])
		if !ok {
			continue
		}
		out = append(out, Ranking{NicheCode: code, Tier: peak.Tier, Level: peak.Level})
	}
	return out
}
