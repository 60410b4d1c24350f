package sentiment

import (
	"errors"
	"fmt"

	"github.com/spacesedan/reelverdict/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Predictor runs single-review inference against a loaded model. It holds no
// mutable state and is safe for concurrent use.
type Predictor struct {
	vectorizer *Vectorizer
	classifier *NaiveBayes
	modelID    string
}

func NewPredictor(v *Vectorizer, nb *NaiveBayes, modelID string) (*Predictor, error) {
	if v == nil || nb == nil {
		return nil, errors.New("predictor needs both a vectorizer and a classifier")
	}
	if v.NumFeatures() != nb.NumFeatures() {
		return nil, fmt.Errorf("vectorizer has %d features but classifier expects %d", v.NumFeatures(), nb.NumFeatures())
	}
	return &Predictor{vectorizer: v, classifier: nb, modelID: modelID}, nil
}

// ModelID identifies the loaded model, e.g. for cache keys.
func (p *Predictor) ModelID() string {
	return p.modelID
}

func (p *Predictor) PredictSentiment(text string) models.PredictionResult {
	x := p.vectorizer.Transform(Clean(text))
	proba := p.classifier.PredictProba(x)
	label := models.SentimentLabel(floats.MaxIdx(proba))

	return models.PredictionResult{
		Sentiment:  label,
		Confidence: proba[label],
	}
}
