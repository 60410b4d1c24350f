package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/reelverdict/config"
	"github.com/spacesedan/reelverdict/internal/analysis"
	"github.com/spacesedan/reelverdict/internal/clients"
	"github.com/spacesedan/reelverdict/internal/dataset"
	"github.com/spacesedan/reelverdict/internal/db"
	"github.com/spacesedan/reelverdict/internal/logging"
	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/spacesedan/reelverdict/internal/sentiment"
	"github.com/spacesedan/reelverdict/internal/utils"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("[ScoreCatalog] Job failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	predictor, err := sentiment.LoadPredictor(cfg.ArtifactPath)
	if err != nil {
		return err
	}

	movies, err := dataset.LoadMoviesWithFallback(cfg.MoviesPaths...)
	if err != nil {
		return err
	}
	reviews, err := dataset.LoadReviews(cfg.ReviewsPath)
	if err != nil {
		return err
	}

	awsCfg, err := clients.NewAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return err
	}
	store := db.NewVerdictStore(clients.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint), cfg.VerdictsTable)

	var cache analysis.Cache
	if cfg.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			TLS:      cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[ScoreCatalog] Valkey unavailable, continuing without cache",
				slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			cache = vc
		}
	}

	svc := analysis.NewService(predictor, dataset.NewReviewIndex(reviews), cache)
	return scoreCatalog(ctx, svc, store, dataset.NewCatalog(movies), predictor.ModelID(), cfg.ScoreWorkers)
}

type verdictWriter interface {
	BatchInsertVerdicts(ctx context.Context, records []models.VerdictRecord) error
}

type movieAnalyzer interface {
	AnalyzeMovie(ctx context.Context, movieID string) (models.MovieAnalysis, error)
}

// scoreCatalog analyzes every catalog movie with at most workers in flight and
// writes the verdicts in DynamoDB-sized batches.
func scoreCatalog(ctx context.Context, svc movieAnalyzer, store verdictWriter, catalog *dataset.Catalog, modelID string, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()
	buffer := utils.NewBatchBuffer[models.VerdictRecord](utils.BATCH_SIZE)
	var scored, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, movie := range catalog.All() {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			a, err := svc.AnalyzeMovie(gctx, movie.ID)
			if errors.Is(err, analysis.ErrNoReviews) {
				skipped.Add(1)
				return nil
			}
			if err != nil {
				return err
			}

			scored.Add(1)
			batch := buffer.Add(models.VerdictRecord{
				MovieID:         movie.ID,
				Title:           movie.Title,
				ModelID:         modelID,
				TotalReviews:    a.Stats.TotalReviews,
				NegativePercent: a.Stats.NegativePercent,
				NeutralPercent:  a.Stats.NeutralPercent,
				PositivePercent: a.Stats.PositivePercent,
				Verdict:         a.Stats.Verdict,
				ScoredAt:        time.Now().UTC(),
			})
			if batch == nil {
				return nil
			}
			utils.LogBatchProcessing("verdicts", len(batch))
			return store.BatchInsertVerdicts(gctx, batch)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if rest := buffer.GetAndClear(); rest != nil {
		utils.LogBatchProcessing("verdicts", len(rest))
		if err := store.BatchInsertVerdicts(ctx, rest); err != nil {
			return err
		}
	}

	slog.Info("[ScoreCatalog] Catalog scored",
		slog.Int("movies", catalog.Len()),
		slog.Int64("scored", scored.Load()),
		slog.Int64("skipped_no_reviews", skipped.Load()),
		slog.String("model_id", modelID),
		slog.Duration("took", time.Since(start)))
	return nil
}
