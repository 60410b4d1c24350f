package sentiment

import (
	"testing"

	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/stretchr/testify/require"
)

var testCorpus = []struct {
	text  string
	label models.SentimentLabel
}{
	{"A brilliant masterpiece with a superb cast", models.Positive},
	{"Stunning visuals and a brilliant script, superb!", models.Positive},
	{"Superb acting, a stunning masterpiece.", models.Positive},
	{"Brilliant and stunning from start to finish", models.Positive},
	{"Terrible plot, awful acting, boring throughout", models.Negative},
	{"Awful. Dreadful pacing and a terrible ending.", models.Negative},
	{"Boring, dreadful and terrible", models.Negative},
	{"An awful, boring waste of time", models.Negative},
	{"Mediocre but passable, fairly average overall", models.Neutral},
	{"Average story, forgettable characters, passable effects", models.Neutral},
	{"Passable and mediocre, quite forgettable", models.Neutral},
	{"Forgettable yet average; mediocre pacing", models.Neutral},
}

func fitTestModel(t *testing.T) (*Vectorizer, *NaiveBayes) {
	t.Helper()

	cleaned := make([]string, len(testCorpus))
	labels := make([]models.SentimentLabel, len(testCorpus))
	for i, ex := range testCorpus {
		cleaned[i] = Clean(ex.text)
		labels[i] = ex.label
	}

	v := FitVectorizer(cleaned, MaxFeatures)
	X := make([]SparseVector, len(cleaned))
	for i, doc := range cleaned {
		X[i] = v.Transform(doc)
	}

	nb, err := FitNaiveBayes(X, labels, v.NumFeatures(), SmoothingAlpha)
	require.NoError(t, err)
	return v, nb
}

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	v, nb := fitTestModel(t)
	p, err := NewPredictor(v, nb, "test")
	require.NoError(t, err)
	return p
}
