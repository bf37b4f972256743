package weights

// Pool is one importance bucket: a raw numeric score and the niches it
// classifies.
type Pool struct {
	RawScore float64  `json:"rawScore"`
	Niches   []string `json:"niches"`
}

// Pools classifies every niche into one of three importance buckets and
// carries the global synergy tuning constants. A niche absent from all
// buckets implicitly uses the Good pool's score.
type Pools struct {
	Important Pool `json:"important"`
	Optional  Pool `json:"optional"`
	Good      Pool `json:"good"`

	SynergyCoreBonus   float64 `json:"synergyCoreBonus"`
	SynergyScaleFactor float64 `json:"synergyScaleFactor"`
}

// ScoreFor returns the raw score of the pool the niche belongs to. Niches
// outside every pool fall back to the Good pool's score.
func (p Pools) ScoreFor(niche string) float64 {
	for _, code := range p.Important.Niches {
		if code == niche {
			return p.Important.RawScore
		}
	}
	for _, code := range p.Optional.Niches {
		if code == niche {
			return p.Optional.RawScore
		}
	}
	return p.Good.RawScore
}

// NicheCodes returns every niche classified by any pool, in pool order.
// Duplicates across pools are kept first-seen.
func (p Pools) NicheCodes() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(p.Important.Niches)+len(p.Optional.Niches)+len(p.Good.Niches))
	for _, group := range [][]string{p.Important.Niches, p.Optional.Niches, p.Good.Niches} {
		for _, code := range group {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	return out
}

// DefaultPools is the compiled-in weight configuration used until an admin
// saves an override.
func DefaultPools() Pools {
	return Pools{
		Important: Pool{
			RawScore: 10,
			Niches: []string{
				"healing", "arts-dps", "physical-dps", "tanking", "dp-generation",
			},
		},
		Optional: Pool{
			RawScore: 5,
			Niches: []string{
				"def-shred", "res-shred", "crowd-control", "fast-redeploy", "blocking",
			},
		},
		Good: Pool{
			RawScore: 2,
			Niches: []string{
				"arts_aoe", "phys_aoe", "buffing", "shifting", "summoning",
			},
		},
		SynergyCoreBonus:   25,
		SynergyScaleFactor: 0.5,
	}
}
