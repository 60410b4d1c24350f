package sentiment

const (
	// Ratings at or below NegativeMaxRating are Negative, ratings up to
	// NeutralMaxRating are Neutral, anything higher is Positive.
	NegativeMaxRating = 4
	NeutralMaxRating  = 7

	// MaxFeatures caps the fitted vocabulary size.
	MaxFeatures = 5000
	// MinTokenLength drops single-letter tokens.
	MinTokenLength = 2
	// StopWordLanguage is the stopwords list applied during tokenization.
	StopWordLanguage = "en"

	// SmoothingAlpha is the additive smoothing applied to feature counts.
	SmoothingAlpha = 1.0
)
