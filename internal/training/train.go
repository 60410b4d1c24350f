package training

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/spacesedan/reelverdict/internal/sentiment"
)

const (
	// TestRatio is the share of each class held out for evaluation.
	TestRatio = 0.2
	// SplitSeed seeds the stratified shuffle so evaluation is reproducible.
	SplitSeed = 42
	// MinExamplesPerClass lets every class appear on both sides of the split.
	MinExamplesPerClass = 2
)

type Options struct {
	MaxFeatures int
	Alpha       float64
	TestRatio   float64
	Seed        uint64
	// Baseline also scores the held-out split with the VADER lexicon.
	Baseline bool
}

func DefaultOptions() Options {
	return Options{
		MaxFeatures: sentiment.MaxFeatures,
		Alpha:       sentiment.SmoothingAlpha,
		TestRatio:   TestRatio,
		Seed:        SplitSeed,
		Baseline:    true,
	}
}

type Result struct {
	Vectorizer *sentiment.Vectorizer
	Classifier *sentiment.NaiveBayes
	Accuracy   float64
	Report     Report
	Baseline   *Report

	Distribution [models.NumLabels]int
	TrainSize    int
	TestSize     int

	options Options
}

// Artifact packages the fitted pair for persistence.
func (r *Result) Artifact() *sentiment.Artifact {
	a := sentiment.NewArtifact(r.Vectorizer, r.Classifier)
	a.MaxFeatures = r.options.MaxFeatures
	a.Alpha = r.options.Alpha
	a.Accuracy = r.Accuracy
	return a
}

// Train derives labels from ratings, splits the reviews, fits the vectorizer and
// classifier on the training side only and evaluates on the held-out side.
func Train(reviews []models.Review, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{options: opts}

	labels := make([]models.SentimentLabel, len(reviews))
	for i, r := range reviews {
		labels[i] = sentiment.LabelForRating(r.ReviewRating)
		res.Distribution[labels[i]]++
	}

	slog.Info("[Training] Sentiment distribution",
		slog.Int("total", len(reviews)),
		slog.Int("negative", res.Distribution[models.Negative]),
		slog.Int("neutral", res.Distribution[models.Neutral]),
		slog.Int("positive", res.Distribution[models.Positive]))

	for _, label := range models.Labels {
		if res.Distribution[label] == 0 {
			return nil, &TrainingDataError{Class: label}
		}
	}

	trainIdx, testIdx, err := StratifiedSplit(labels, opts.TestRatio, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to split reviews: %w", err)
	}
	res.TrainSize, res.TestSize = len(trainIdx), len(testIdx)

	slog.Info("[Training] Split reviews",
		slog.Int("train", res.TrainSize),
		slog.Int("test", res.TestSize),
		slog.Uint64("seed", opts.Seed))

	cleaned := make([]string, len(reviews))
	for i, r := range reviews {
		cleaned[i] = sentiment.Clean(r.ReviewText)
	}

	trainDocs := make([]string, len(trainIdx))
	trainLabels := make([]models.SentimentLabel, len(trainIdx))
	for k, i := range trainIdx {
		trainDocs[k] = cleaned[i]
		trainLabels[k] = labels[i]
	}

	res.Vectorizer = sentiment.FitVectorizer(trainDocs, opts.MaxFeatures)
	slog.Info("[Training] Vectorizer fitted",
		slog.Int("vocabulary", res.Vectorizer.NumFeatures()))

	trainX := make([]sentiment.SparseVector, len(trainDocs))
	for k, doc := range trainDocs {
		trainX[k] = res.Vectorizer.Transform(doc)
	}

	res.Classifier, err = sentiment.FitNaiveBayes(trainX, trainLabels, res.Vectorizer.NumFeatures(), opts.Alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	actual := make([]models.SentimentLabel, len(testIdx))
	predicted := make([]models.SentimentLabel, len(testIdx))
	for k, i := range testIdx {
		actual[k] = labels[i]
		predicted[k] = res.Classifier.Predict(res.Vectorizer.Transform(cleaned[i]))
	}

	res.Report, err = Evaluate(actual, predicted)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate classifier: %w", err)
	}
	res.Accuracy = res.Report.Accuracy

	if opts.Baseline {
		baseline := sentiment.NewLexiconBaseline()
		lexicon := make([]models.SentimentLabel, len(testIdx))
		for k, i := range testIdx {
			_, lexicon[k] = baseline.Score(reviews[i].ReviewText)
		}
		report, err := Evaluate(actual, lexicon)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate lexicon baseline: %w", err)
		}
		res.Baseline = &report
	}

	slog.Info("[Training] Model evaluated",
		slog.Float64("accuracy", res.Accuracy),
		slog.Float64("macro_f1", res.Report.MacroF1),
		slog.Duration("elapsed", time.Since(start)))

	return res, nil
}
