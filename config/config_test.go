package config

import (
	"os"
	"testing"

	"github.com/spacesedan/reelverdict/internal/sentiment"
	"github.com/spacesedan/reelverdict/internal/training"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	unset(t, "APP_ENV", "ARTIFACT_PATH", "MOVIES_CSV", "TRAIN_MAX_FEATURES", "TRAIN_TEST_RATIO", "TRAIN_SEED", "VALKEY_TLS")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "models/sentiment_model.json", cfg.ArtifactPath)
	assert.Equal(t, []string{"data/imdb_list_combined.csv", "data/imdb_list.csv"}, cfg.MoviesPaths)
	assert.Equal(t, sentiment.MaxFeatures, cfg.MaxFeatures)
	assert.Equal(t, training.TestRatio, cfg.TestRatio)
	assert.Equal(t, uint64(training.SplitSeed), cfg.SplitSeed)
	assert.False(t, cfg.ValkeyTLS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MOVIES_CSV", " a.csv, ,b.csv ")
	t.Setenv("TRAIN_MAX_FEATURES", "1200")
	t.Setenv("TRAIN_TEST_RATIO", "0.25")
	t.Setenv("TRAIN_SEED", "7")
	t.Setenv("VALKEY_TLS", "true")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.MoviesPaths)
	assert.Equal(t, 1200, cfg.MaxFeatures)
	assert.Equal(t, 0.25, cfg.TestRatio)
	assert.Equal(t, uint64(7), cfg.SplitSeed)
	assert.True(t, cfg.ValkeyTLS)

	opts := cfg.TrainingOptions()
	assert.Equal(t, 1200, opts.MaxFeatures)
	assert.Equal(t, 0.25, opts.TestRatio)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, sentiment.SmoothingAlpha, opts.Alpha)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TRAIN_MAX_FEATURES", "lots")
	t.Setenv("TRAIN_TEST_RATIO", "a fifth")

	cfg := Load()

	assert.Equal(t, sentiment.MaxFeatures, cfg.MaxFeatures)
	assert.Equal(t, training.TestRatio, cfg.TestRatio)
}

func TestLoadNonPositiveBoundsFallBack(t *testing.T) {
	for _, raw := range []string{"0", "-1"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("TRAIN_MAX_FEATURES", raw)
			t.Setenv("SCORE_WORKERS", raw)

			cfg := Load()

			assert.Equal(t, sentiment.MaxFeatures, cfg.MaxFeatures)
			assert.Equal(t, sentiment.MaxFeatures, cfg.TrainingOptions().MaxFeatures)
			assert.Equal(t, 4, cfg.ScoreWorkers)
		})
	}
}

// unset clears keys for the duration of the test; t.Setenv restores them afterwards.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
