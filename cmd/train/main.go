package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/reelverdict/config"
	"github.com/spacesedan/reelverdict/internal/analysis"
	"github.com/spacesedan/reelverdict/internal/dataset"
	"github.com/spacesedan/reelverdict/internal/logging"
	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/spacesedan/reelverdict/internal/sentiment"
	"github.com/spacesedan/reelverdict/internal/training"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	reviews, err := dataset.LoadReviews(cfg.ReviewsPath)
	if err != nil {
		slog.Error("[Train] Failed to load reviews", slog.String("error", err.Error()))
		os.Exit(1)
	}

	start := time.Now()
	res, err := training.Train(reviews, cfg.TrainingOptions())
	if err != nil {
		slog.Error("[Train] Training failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logReport("model", res.Report)
	if res.Baseline != nil {
		logReport("vader-baseline", *res.Baseline)
	}
	slog.Info("[Train] Training finished",
		slog.Int("train_size", res.TrainSize),
		slog.Int("test_size", res.TestSize),
		slog.Int("features", res.Vectorizer.NumFeatures()),
		slog.Float64("accuracy", res.Accuracy),
		slog.Duration("took", time.Since(start)))

	if err := sentiment.SaveArtifact(cfg.ArtifactPath, res.Artifact()); err != nil {
		slog.Error("[Train] Failed to save model", slog.String("error", err.Error()))
		os.Exit(1)
	}

	predictor, err := sentiment.LoadPredictor(cfg.ArtifactPath)
	if err != nil {
		slog.Error("[Train] Saved model does not load", slog.String("error", err.Error()))
		os.Exit(1)
	}
	smokeTest(predictor, reviews)
}

func logReport(name string, r training.Report) {
	slog.Info("[Train] Evaluation",
		slog.String("scorer", name),
		slog.Float64("accuracy", r.Accuracy),
		slog.Float64("macro_f1", r.MacroF1),
		slog.Int("total", r.Total))

	for _, label := range models.Labels {
		m := r.PerClass[label]
		slog.Info("[Train] Class report",
			slog.String("scorer", name),
			slog.String("class", label.String()),
			slog.Float64("precision", m.Precision),
			slog.Float64("recall", m.Recall),
			slog.Float64("f1", m.F1),
			slog.Int("support", m.Support),
			slog.Any("confusion_row", r.Confusion[label]))
	}
}

// smokeTest runs the reloaded model on one clearly positive and one clearly
// negative review from the dataset.
func smokeTest(p *sentiment.Predictor, reviews []models.Review) {
	var positive, negative *models.Review
	for i := range reviews {
		r := &reviews[i]
		if positive == nil && r.ReviewRating >= 9 {
			positive = r
		}
		if negative == nil && r.ReviewRating <= 3 {
			negative = r
		}
		if positive != nil && negative != nil {
			break
		}
	}

	for _, r := range []*models.Review{positive, negative} {
		if r == nil {
			continue
		}
		pred := p.PredictSentiment(r.ReviewText)
		slog.Info("[Train] Sample prediction",
			slog.String("model_id", p.ModelID()),
			slog.Int("rating", r.ReviewRating),
			slog.String("expected", sentiment.LabelForRating(r.ReviewRating).String()),
			slog.String("predicted", pred.Sentiment.String()),
			slog.Float64("confidence", pred.Confidence),
			slog.String("preview", analysis.Preview(r.ReviewText, 80)))
	}
}
