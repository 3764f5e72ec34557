package domain

// ConfidenceLevel is the qualitative bucket shown to farmers alongside
// the raw score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Score thresholds for the confidence buckets. Every surface that
// colors or labels a detection derives from these two values.
const (
	HighConfidenceThreshold   = 0.7
	MediumConfidenceThreshold = 0.4
)

// LevelForScore buckets a confidence score.
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= HighConfidenceThreshold:
		return ConfidenceHigh
	case score >= MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
