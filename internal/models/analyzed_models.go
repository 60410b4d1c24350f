package models

import "time"

type Verdict string

const (
	VerdictGood  Verdict = "Good Movie"
	VerdictBad   Verdict = "Bad Movie"
	VerdictMixed Verdict = "Mixed Reviews"
)

type AnalysisStats struct {
	TotalReviews    int     `json:"total_reviews"`
	NegativeCount   int     `json:"negative_count"`
	NeutralCount    int     `json:"neutral_count"`
	PositiveCount   int     `json:"positive_count"`
	NegativePercent float64 `json:"negative_percent"`
	NeutralPercent  float64 `json:"neutral_percent"`
	PositivePercent float64 `json:"positive_percent"`
	Verdict         Verdict `json:"verdict"`
	Reason          string  `json:"reason"`
}

type SampleReview struct {
	Sentiment      SentimentLabel `json:"sentiment"`
	SentimentLabel string         `json:"sentiment_label"`
	Confidence     float64        `json:"confidence"`
	Rating         int            `json:"rating"`
	ReviewTitle    string         `json:"review_title"`
	ReviewText     string         `json:"review_text"`
}

type SampleReviews struct {
	Positive []SampleReview `json:"positive"`
	Negative []SampleReview `json:"negative"`
}

// MovieAnalysis aggregates the predictions for every review of one movie.
type MovieAnalysis struct {
	MovieID string        `json:"movie_id"`
	Stats   AnalysisStats `json:"analysis"`
	Samples SampleReviews `json:"sample_reviews"`
}

// AnalysisResponse is the envelope handed to the presentation layer.
type AnalysisResponse struct {
	Success       bool           `json:"success"`
	NoReviews     bool           `json:"no_reviews,omitempty"`
	Movie         Movie          `json:"movie"`
	Analysis      *AnalysisStats `json:"analysis,omitempty"`
	SampleReviews *SampleReviews `json:"sample_reviews,omitempty"`
	Message       string         `json:"message,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// VerdictRecord is the stored summary written by the catalog scoring job.
type VerdictRecord struct {
	MovieID         string    `json:"movie_id" dynamodbav:"movie_id"`
	Title           string    `json:"title" dynamodbav:"title"`
	ModelID         string    `json:"model_id" dynamodbav:"model_id"`
	TotalReviews    int       `json:"total_reviews" dynamodbav:"total_reviews"`
	NegativePercent float64   `json:"negative_percent" dynamodbav:"negative_percent"`
	NeutralPercent  float64   `json:"neutral_percent" dynamodbav:"neutral_percent"`
	PositivePercent float64   `json:"positive_percent" dynamodbav:"positive_percent"`
	Verdict         Verdict   `json:"verdict" dynamodbav:"verdict"`
	ScoredAt        time.Time `json:"scored_at" dynamodbav:"-"`
}
