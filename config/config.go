package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/reelverdict/internal/sentiment"
	"github.com/spacesedan/reelverdict/internal/training"
)

type Config struct {
	Env      string
	LogLevel string

	ArtifactPath string
	ReviewsPath  string
	MoviesPaths  []string

	MaxFeatures int
	TestRatio   float64
	SplitSeed   uint64

	ScoreWorkers int

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool

	AWSRegion     string
	AWSEndpoint   string
	VerdictsTable string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return v
}

// getEnvPositiveInt is getEnvInt for settings where zero or a negative value
// would disable a bound.
func getEnvPositiveInt(key string, defaultValue int) int {
	v := getEnvInt(key, defaultValue)
	if v <= 0 {
		slog.Warn("[Config] Value must be positive, using default",
			slog.String("key", key),
			slog.Int("value", v),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("[Config] Invalid float, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Float64("default", defaultValue))
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the process configuration from the environment. Call LoadEnv first
// so values from the .env file are visible.
func Load() Config {
	env := getEnv("APP_ENV", "dev")

	return Config{
		Env:      env,
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ArtifactPath: getEnv("ARTIFACT_PATH", "models/sentiment_model.json"),
		ReviewsPath:  getEnv("REVIEWS_CSV", "data/imdb_reviews.csv"),
		MoviesPaths:  splitList(getEnv("MOVIES_CSV", "data/imdb_list_combined.csv,data/imdb_list.csv")),

		MaxFeatures: getEnvPositiveInt("TRAIN_MAX_FEATURES", sentiment.MaxFeatures),
		TestRatio:   getEnvFloat("TRAIN_TEST_RATIO", training.TestRatio),
		SplitSeed:   uint64(getEnvInt("TRAIN_SEED", training.SplitSeed)),

		ScoreWorkers: getEnvPositiveInt("SCORE_WORKERS", 4),

		ValkeyAddress:  getEnv("VALKEY_INIT_ADDRESS", ""),
		ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:      getEnv("VALKEY_TLS", "false") == "true",

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:   getEnv("AWS_ENDPOINT", ""),
		VerdictsTable: getEnv("VERDICTS_TABLE_NAME", "MovieVerdicts"),
	}
}

// TrainingOptions maps the training settings onto the pipeline options.
func (c Config) TrainingOptions() training.Options {
	opts := training.DefaultOptions()
	opts.MaxFeatures = c.MaxFeatures
	opts.TestRatio = c.TestRatio
	opts.Seed = c.SplitSeed
	return opts
}
