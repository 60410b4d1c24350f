package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacesedan/reelverdict/internal/models"
)

const (
	GoodMoviePositivePercent = 50.0
	BadMovieNegativePercent  = 40.0
	MaxSamplesPerPolarity    = 2
	SamplePreviewLength      = 200
)

var (
	ErrNoReviews       = errors.New("no reviews to analyze")
	ErrMismatchedInput = errors.New("predictions and reviews differ in length")
)

// Aggregate folds the per-review predictions of one movie into counts,
// percentages, a verdict and a few sample reviews. results[i] must be the
// prediction for reviews[i].
func Aggregate(movieID string, results []models.PredictionResult, reviews []models.Review) (models.MovieAnalysis, error) {
	if len(results) == 0 {
		return models.MovieAnalysis{}, ErrNoReviews
	}
	if len(results) != len(reviews) {
		return models.MovieAnalysis{}, fmt.Errorf("%w: %d predictions, %d reviews",
			ErrMismatchedInput, len(results), len(reviews))
	}

	var counts [models.NumLabels]int
	samples := models.SampleReviews{
		Positive: []models.SampleReview{},
		Negative: []models.SampleReview{},
	}

	for i, res := range results {
		if !res.Sentiment.Valid() {
			return models.MovieAnalysis{}, fmt.Errorf("invalid predicted label %d at %d", res.Sentiment, i)
		}
		counts[res.Sentiment]++

		switch res.Sentiment {
		case models.Positive:
			if len(samples.Positive) < MaxSamplesPerPolarity {
				samples.Positive = append(samples.Positive, newSample(res, reviews[i]))
			}
		case models.Negative:
			if len(samples.Negative) < MaxSamplesPerPolarity {
				samples.Negative = append(samples.Negative, newSample(res, reviews[i]))
			}
		}
	}

	total := len(results)
	var percents [models.NumLabels]float64
	for label, n := range counts {
		percents[label] = 100 * float64(n) / float64(total)
	}

	verdict, reason := decideVerdict(percents[models.Positive], percents[models.Negative])

	return models.MovieAnalysis{
		MovieID: movieID,
		Stats: models.AnalysisStats{
			TotalReviews:    total,
			NegativeCount:   counts[models.Negative],
			NeutralCount:    counts[models.Neutral],
			PositiveCount:   counts[models.Positive],
			NegativePercent: round2(percents[models.Negative]),
			NeutralPercent:  round2(percents[models.Neutral]),
			PositivePercent: round2(percents[models.Positive]),
			Verdict:         verdict,
			Reason:          reason,
		},
		Samples: samples,
	}, nil
}

// decideVerdict applies the rules in order; the first match wins.
func decideVerdict(positive, negative float64) (models.Verdict, string) {
	switch {
	case positive > GoodMoviePositivePercent:
		return models.VerdictGood, fmt.Sprintf(
			"This movie has %.1f%% positive reviews. Audiences generally enjoyed the film, praising its quality and entertainment value.",
			positive)
	case negative > BadMovieNegativePercent:
		return models.VerdictBad, fmt.Sprintf(
			"This movie has %.1f%% negative reviews. Many viewers were disappointed with various aspects of the film.",
			negative)
	default:
		return models.VerdictMixed, fmt.Sprintf(
			"This movie received mixed reactions with %.1f%% positive and %.1f%% negative reviews. Opinions are divided.",
			positive, negative)
	}
}

func newSample(res models.PredictionResult, r models.Review) models.SampleReview {
	return models.SampleReview{
		Sentiment:      res.Sentiment,
		SentimentLabel: res.Sentiment.String(),
		Confidence:     res.Confidence,
		Rating:         r.ReviewRating,
		ReviewTitle:    r.ReviewTitle,
		ReviewText:     Preview(r.ReviewText, SamplePreviewLength),
	}
}

// Preview cuts text to at most n runes, marking a cut with "...".
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
