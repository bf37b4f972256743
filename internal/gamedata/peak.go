package gamedata

// LevelRank orders evaluation prerequisites: base kit 0, Elite-2 promotion 1,
// any specific module 2. A higher rank dominates regardless of tier.
func LevelRank(level string) int {
	switch level {
	case "":
		return 0
	case "E2":
		return 1
	default:
		return 2
	}
}

// PeakOf reduces a set of evaluations for the same operator to the single
// one that matters: highest level rank first, better tier second. When both
// are identical the first-seen evaluation wins, so the reduction is stable.
// An empty input returns the zero Evaluation and false.
func PeakOf(evals []Evaluation) (Evaluation, bool) {
	if len(evals) == 0 {
		return Evaluation{}, false
	}
	best := evals[0]
	for _, eval := range evals[1:] {
		if betterEvaluation(eval, best) {
			best = eval
		}
	}
	return best, true
}

func betterEvaluation(a, b Evaluation) bool {
	aLevel, bLevel := LevelRank(a.Level), LevelRank(b.Level)
	if aLevel != bLevel {
		return aLevel > bLevel
	}
	return a.Tier.Rank() < b.Tier.Rank()
}
