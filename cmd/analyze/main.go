package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/spacesedan/reelverdict/config"
	"github.com/spacesedan/reelverdict/internal/analysis"
	"github.com/spacesedan/reelverdict/internal/clients"
	"github.com/spacesedan/reelverdict/internal/dataset"
	"github.com/spacesedan/reelverdict/internal/logging"
	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/spacesedan/reelverdict/internal/sentiment"
)

const analyzeTimeout = 30 * time.Second

func main() {
	search := flag.String("search", "", "search the catalog by title instead of analyzing a movie")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <movie_id> | -search <query>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *search == "" && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	if err := run(context.Background(), cfg, flag.Arg(0), *search, os.Stdout); err != nil {
		slog.Error("[Analyze] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run prints search hits when search is set, otherwise the analysis envelope
// for movieID. Failures after the catalog is loaded are also written to out as
// an error envelope.
func run(ctx context.Context, cfg config.Config, movieID, search string, out io.Writer) error {
	movies, err := dataset.LoadMoviesWithFallback(cfg.MoviesPaths...)
	if err != nil {
		return fmt.Errorf("failed to load movies: %w", err)
	}
	catalog := dataset.NewCatalog(movies)

	if search != "" {
		hits := catalog.Search(search)
		if hits == nil {
			hits = []models.Movie{}
		}
		return writeJSON(out, map[string]any{
			"success": true,
			"results": hits,
		})
	}

	predictor, err := sentiment.LoadPredictor(cfg.ArtifactPath)
	if err != nil {
		return fmt.Errorf("model is not available, run the train command first: %w", err)
	}

	reviews, err := dataset.LoadReviews(cfg.ReviewsPath)
	if err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	var cache analysis.Cache
	if cfg.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			TLS:      cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Analyze] Valkey unavailable, continuing without cache",
				slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			cache = vc
		}
	}

	movie, err := catalog.Get(movieID)
	if err != nil {
		err = fmt.Errorf("movie %s: %w", movieID, err)
		if werr := writeJSON(out, models.AnalysisResponse{Success: false, Error: err.Error()}); werr != nil {
			return werr
		}
		return err
	}

	svc := analysis.NewService(predictor, dataset.NewReviewIndex(reviews), cache)
	resp, err := svc.Respond(ctx, movie)
	if err != nil {
		err = fmt.Errorf("analysis of %s failed: %w", movieID, err)
		if werr := writeJSON(out, models.AnalysisResponse{Success: false, Movie: movie, Error: err.Error()}); werr != nil {
			return werr
		}
		return err
	}

	return writeJSON(out, resp)
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
