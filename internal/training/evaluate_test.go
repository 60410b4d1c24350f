package training

import (
	"testing"

	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	n, u, p := models.Negative, models.Neutral, models.Positive
	actual := []models.SentimentLabel{n, n, n, u, u, p, p, p}
	predicted := []models.SentimentLabel{n, n, u, u, p, p, p, n}

	r, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	assert.Equal(t, 8, r.Total)
	assert.InDelta(t, 5.0/8.0, r.Accuracy, 1e-12)
	assert.Equal(t, [3][3]int{{2, 1, 0}, {0, 1, 1}, {1, 0, 2}}, r.Confusion)

	neg := r.PerClass[models.Negative]
	assert.InDelta(t, 2.0/3.0, neg.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, neg.Recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, neg.F1, 1e-12)
	assert.Equal(t, 3, neg.Support)

	neu := r.PerClass[models.Neutral]
	assert.InDelta(t, 0.5, neu.Precision, 1e-12)
	assert.InDelta(t, 0.5, neu.Recall, 1e-12)
	assert.Equal(t, 2, neu.Support)

	assert.InDelta(t, (2.0/3.0+0.5+2.0/3.0)/3.0, r.MacroF1, 1e-12)
}

func TestEvaluateZeroDivision(t *testing.T) {
	actual := []models.SentimentLabel{models.Negative, models.Negative}
	predicted := []models.SentimentLabel{models.Negative, models.Negative}

	r, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	assert.Equal(t, 1.0, r.Accuracy)
	assert.Equal(t, ClassMetrics{}, r.PerClass[models.Positive])
	assert.Equal(t, ClassMetrics{}, r.PerClass[models.Neutral])
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate([]models.SentimentLabel{models.Negative}, nil)
	assert.Error(t, err)

	_, err = Evaluate(nil, nil)
	assert.Error(t, err)

	_, err = Evaluate([]models.SentimentLabel{models.Negative}, []models.SentimentLabel{5})
	assert.Error(t, err)
}
