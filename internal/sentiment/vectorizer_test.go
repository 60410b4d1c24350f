package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestFitVectorizerVocabularyCapAndTieBreak(t *testing.T) {
	corpus := []string{
		"brilliant superb brilliant",
		"terrible superb",
		"awful",
	}

	v := FitVectorizer(corpus, 3)

	// brilliant and superb occur twice; awful beats terrible on the lexicographic tie.
	assert.Equal(t, []string{"awful", "brilliant", "superb"}, v.Vocabulary())
	assert.Equal(t, 3, v.NumFeatures())

	idf := v.IDF()
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf[0], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf[1], 1e-12)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idf[2], 1e-12)
}

func TestFitVectorizerIsDeterministic(t *testing.T) {
	corpus := []string{
		"stunning visuals superb cast",
		"boring dreadful script",
		"passable mediocre average",
		"superb stunning brilliant",
	}

	first := FitVectorizer(corpus, 4)
	for i := 0; i < 10; i++ {
		again := FitVectorizer(corpus, 4)
		assert.Equal(t, first.Vocabulary(), again.Vocabulary())
		assert.Equal(t, first.IDF(), again.IDF())
	}
}

func TestFitVectorizerDropsStopWordsAndShortTokens(t *testing.T) {
	v := FitVectorizer([]string{"the movie was brilliant and the cast is superb x"}, 0)
	vocab := v.Vocabulary()

	for _, stop := range []string{"the", "and", "is", "was", "x"} {
		assert.NotContains(t, vocab, stop)
	}
	assert.Contains(t, vocab, "brilliant")
	assert.Contains(t, vocab, "superb")
}

func TestFitVectorizerEmptyCorpus(t *testing.T) {
	v := FitVectorizer(nil, MaxFeatures)

	assert.Equal(t, 0, v.NumFeatures())
	assert.Equal(t, 0, v.Transform("brilliant").NNZ())
}

func TestTransform(t *testing.T) {
	v := FitVectorizer([]string{"brilliant superb brilliant", "terrible superb", "awful"}, 3)

	x := v.Transform("brilliant superb zebra brilliant")

	require.Equal(t, []int{1, 2}, x.Indices)
	b := 2 * (math.Log(2) + 1)
	s := math.Log(4.0/3.0) + 1
	norm := math.Hypot(b, s)
	assert.InDelta(t, b/norm, x.Values[0], 1e-12)
	assert.InDelta(t, s/norm, x.Values[1], 1e-12)
	assert.InDelta(t, 1.0, floats.Norm(x.Values, 2), 1e-12)
}

func TestTransformIgnoresUnknownTokensAndDoesNotMutate(t *testing.T) {
	v := FitVectorizer([]string{"brilliant superb", "terrible awful"}, 0)
	before := v.Vocabulary()

	assert.Equal(t, 0, v.Transform("zebra giraffe").NNZ())
	assert.Equal(t, 0, v.Transform("").NNZ())
	assert.Equal(t, before, v.Vocabulary())
}

func TestNewVectorizerValidation(t *testing.T) {
	tests := []struct {
		name       string
		vocabulary []string
		idf        []float64
	}{
		{name: "length mismatch", vocabulary: []string{"a1", "b1"}, idf: []float64{1}},
		{name: "duplicate term", vocabulary: []string{"good", "good"}, idf: []float64{1, 1}},
		{name: "empty term", vocabulary: []string{""}, idf: []float64{1}},
		{name: "nan weight", vocabulary: []string{"good"}, idf: []float64{math.NaN()}},
		{name: "zero weight", vocabulary: []string{"good"}, idf: []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVectorizer(tt.vocabulary, tt.idf)
			assert.Error(t, err)
		})
	}

	v, err := NewVectorizer([]string{"awful", "superb"}, []float64{1.5, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v.Transform("superb").Indices)
}
