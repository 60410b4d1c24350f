package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/reelverdict/internal/models"
)

type Classifier interface {
	PredictSentiment(text string) models.PredictionResult
	ModelID() string
}

type ReviewSource interface {
	ReviewsFor(movieID string) []models.Review
}

// Cache stores finished analyses. A miss returns (nil, nil).
type Cache interface {
	GetAnalysis(ctx context.Context, key string) (*models.MovieAnalysis, error)
	SetAnalysis(ctx context.Context, key string, a models.MovieAnalysis) error
}

// Service runs the prediction pipeline for a movie. It holds no mutable
// state and is safe for concurrent use when its collaborators are.
type Service struct {
	classifier Classifier
	reviews    ReviewSource
	cache      Cache
}

// NewService wires the service; cache may be nil.
func NewService(classifier Classifier, reviews ReviewSource, cache Cache) *Service {
	return &Service{
		classifier: classifier,
		reviews:    reviews,
		cache:      cache,
	}
}

func CacheKey(modelID, movieID string) string {
	return fmt.Sprintf("analysis:%s:%s", modelID, movieID)
}

// AnalyzeMovie predicts every review of movieID and aggregates the results.
// It returns ErrNoReviews when the movie has none.
func (s *Service) AnalyzeMovie(ctx context.Context, movieID string) (models.MovieAnalysis, error) {
	reviews := s.reviews.ReviewsFor(movieID)
	if len(reviews) == 0 {
		return models.MovieAnalysis{}, ErrNoReviews
	}

	key := CacheKey(s.classifier.ModelID(), movieID)
	if s.cache != nil {
		cached, err := s.cache.GetAnalysis(ctx, key)
		if err != nil {
			slog.Warn("[Analysis] Cache read failed, analyzing",
				slog.String("movie_id", movieID),
				slog.String("error", err.Error()))
		} else if cached != nil {
			slog.Debug("[Analysis] Cache hit", slog.String("movie_id", movieID))
			return *cached, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return models.MovieAnalysis{}, err
	}

	start := time.Now()
	results := make([]models.PredictionResult, len(reviews))
	for i, r := range reviews {
		results[i] = s.classifier.PredictSentiment(r.ReviewText)
	}

	analysis, err := Aggregate(movieID, results, reviews)
	if err != nil {
		return models.MovieAnalysis{}, fmt.Errorf("failed to aggregate %s: %w", movieID, err)
	}

	slog.Debug("[Analysis] Movie analyzed",
		slog.String("movie_id", movieID),
		slog.Int("reviews", len(reviews)),
		slog.String("verdict", string(analysis.Stats.Verdict)),
		slog.Duration("took", time.Since(start)))

	if s.cache != nil {
		if err := s.cache.SetAnalysis(ctx, key, analysis); err != nil {
			slog.Warn("[Analysis] Cache write failed",
				slog.String("movie_id", movieID),
				slog.String("error", err.Error()))
		}
	}

	return analysis, nil
}

const NoReviewsMessage = "This movie is from our extended database. Sentiment analysis is not available, but you can see IMDb rating and details."

// Respond builds the presentation envelope for a movie.
func (s *Service) Respond(ctx context.Context, movie models.Movie) (models.AnalysisResponse, error) {
	analysis, err := s.AnalyzeMovie(ctx, movie.ID)
	if errors.Is(err, ErrNoReviews) {
		return models.AnalysisResponse{
			Success:   true,
			NoReviews: true,
			Movie:     movie,
			Message:   NoReviewsMessage,
		}, nil
	}
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	return models.AnalysisResponse{
		Success:       true,
		Movie:         movie,
		Analysis:      &analysis.Stats,
		SampleReviews: &analysis.Samples,
	}, nil
}
