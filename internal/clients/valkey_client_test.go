package clients

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reelverdict/internal/models"
)

func TestAnalysisEncoding(t *testing.T) {
	in := models.MovieAnalysis{
		MovieID: "tt001",
		Stats: models.AnalysisStats{
			TotalReviews:    4,
			PositiveCount:   3,
			NegativeCount:   1,
			PositivePercent: 75,
			NegativePercent: 25,
			Verdict:         models.VerdictGood,
			Reason:          "mostly liked",
		},
		Samples: models.SampleReviews{
			Positive: []models.SampleReview{{Sentiment: models.Positive, SentimentLabel: "Positive", ReviewText: "great"}},
			Negative: []models.SampleReview{},
		},
	}

	data, err := encodeAnalysis(in)
	require.NoError(t, err)

	out, err := decodeAnalysis(data)
	require.NoError(t, err)
	assert.Equal(t, in, *out)

	_, err = decodeAnalysis([]byte("{not json"))
	assert.Error(t, err)
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(io.EOF))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("read: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE")))
}

func TestNewValkeyClientRequiresAddress(t *testing.T) {
	_, err := NewValkeyClient(context.Background(), ValkeyOptions{})
	assert.Error(t, err)
}

func TestValkeyClientOption(t *testing.T) {
	opts := ValkeyOptions{Address: "localhost:6379", Password: "secret", TLS: true}.clientOption()
	assert.Equal(t, []string{"localhost:6379"}, opts.InitAddress)
	assert.Equal(t, "secret", opts.Password)
	require.NotNil(t, opts.TLSConfig)

	opts = ValkeyOptions{Address: "localhost:6379"}.clientOption()
	assert.Nil(t, opts.TLSConfig)
}

func TestWaitForRetry(t *testing.T) {
	ctx := context.Background()

	start := time.Now()
	assert.False(t, waitForRetry(ctx, 2, 3, time.Hour), "no wait after the last attempt")
	assert.False(t, waitForRetry(ctx, 0, 1, time.Hour))
	assert.Less(t, time.Since(start), time.Second)

	assert.True(t, waitForRetry(ctx, 0, 3, time.Millisecond))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.False(t, waitForRetry(canceled, 0, 3, time.Hour))
}
