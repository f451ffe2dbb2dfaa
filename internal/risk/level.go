package risk

// Level is the ordinal risk classification of a pregnancy.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

var levelRank = map[Level]int{
	LevelLow:      0,
	LevelModerate: 1,
	LevelHigh:     2,
	LevelCritical: 3,
}

// Rank returns the ordinal position of the level, LOW being 0.
func (l Level) Rank() int {
	return levelRank[l]
}

// MoreSevereThan reports whether l is strictly above other in the ordering.
// Alerting collaborators use this to detect an escalating transition.
func (l Level) MoreSevereThan(other Level) bool {
	return l.Rank() > other.Rank()
}

// Score thresholds for the final classification. Boundaries are
// inclusive-lower: a total of exactly 15 is CRITICAL.
const (
	criticalThreshold = 15
	highThreshold     = 10
	moderateThreshold = 5
)

// Classify maps a raw risk score onto a Level.
func Classify(score int) Level {
	switch {
	case score >= criticalThreshold:
		return LevelCritical
	case score >= highThreshold:
		return LevelHigh
	case score >= moderateThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}
