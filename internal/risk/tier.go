package risk

// Level is one of the four ordinal advisory levels derived from the scalar
// risk score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Tier boundaries are inclusive lower bounds, evaluated highest-first.
const (
	thresholdCritical = 0.70
	thresholdHigh     = 0.40
	thresholdModerate = 0.20
)

// Classify maps a risk score to its advisory level.
func Classify(score float64) Level {
	switch {
	case score >= thresholdCritical:
		return LevelCritical
	case score >= thresholdHigh:
		return LevelHigh
	case score >= thresholdModerate:
		return LevelModerate
	default:
		return LevelLow
	}
}

// AllLevels returns all levels in order from lowest to highest.
func AllLevels() []Level {
	return []Level{LevelLow, LevelModerate, LevelHigh, LevelCritical}
}

// DisplayName returns a human-readable label for the level.
func (l Level) DisplayName() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelModerate:
		return "Moderate"
	case LevelHigh:
		return "High"
	case LevelCritical:
		return "Critical"
	default:
		return string(l)
	}
}

// Advisory returns the fixed care-pathway message for the level.
func (l Level) Advisory() string {
	switch l {
	case LevelCritical:
		return "Urgent: consult a dermatologist as soon as possible."
	case LevelHigh:
		return "Schedule a dermatologist appointment within the next week."
	case LevelModerate:
		return "Monitor the lesion and see a doctor if it changes."
	case LevelLow:
		return "Routine monitoring. Re-scan if the lesion changes."
	default:
		return ""
	}
}
