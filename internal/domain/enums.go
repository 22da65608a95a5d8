package domain

// Difficulty labels target puzzle generation & grading.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// StrategyTier limits hinting/logic complexity used.
type StrategyTier int

const (
	StrategySingles StrategyTier = iota // singles / sole candidates
	StrategyPairs                       // naked/hidden pairs
	StrategyAdvanced                    // pointing/claiming, triples, etc.
	StrategyXWing                       // advanced fish (placeholder for cap)
)

// String returns the difficulty's folder/API name; unknown values read as
// medium.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

func (t StrategyTier) String() string {
	switch t {
	case StrategyPairs:
		return "pairs"
	case StrategyAdvanced:
		return "advanced"
	case StrategyXWing:
		return "xwing"
	default:
		return "singles"
	}
}