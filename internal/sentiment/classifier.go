package sentiment

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacesedan/reelverdict/internal/models"
	"gonum.org/v1/gonum/floats"
)

// NaiveBayes is a multinomial naive Bayes classifier over TF-IDF features. All
// parameters are kept in log space.
type NaiveBayes struct {
	classLogPrior  []float64
	featureLogProb [][]float64
}

// FitNaiveBayes estimates class priors from label frequencies and per-class
// feature likelihoods with additive smoothing alpha. Every class must be present.
func FitNaiveBayes(X []SparseVector, y []models.SentimentLabel, numFeatures int, alpha float64) (*NaiveBayes, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("got %d feature vectors and %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, errors.New("no training examples")
	}
	if numFeatures < 0 {
		return nil, fmt.Errorf("invalid feature count %d", numFeatures)
	}
	if alpha <= 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("smoothing alpha must be a positive finite number, got %v", alpha)
	}

	classCount := make([]float64, models.NumLabels)
	featureCount := make([][]float64, models.NumLabels)
	for c := range featureCount {
		featureCount[c] = make([]float64, numFeatures)
	}

	for i, x := range X {
		label := y[i]
		if !label.Valid() {
			return nil, fmt.Errorf("example %d has invalid label %d", i, int(label))
		}
		classCount[label]++
		for k, idx := range x.Indices {
			if idx < 0 || idx >= numFeatures {
				return nil, fmt.Errorf("example %d has feature index %d outside [0, %d)", i, idx, numFeatures)
			}
			featureCount[label][idx] += x.Values[k]
		}
	}

	nb := &NaiveBayes{
		classLogPrior:  make([]float64, models.NumLabels),
		featureLogProb: make([][]float64, models.NumLabels),
	}

	total := float64(len(X))
	for _, label := range models.Labels {
		if classCount[label] == 0 {
			return nil, fmt.Errorf("no training examples for class %s", label)
		}
		nb.classLogPrior[label] = math.Log(classCount[label] / total)

		denom := math.Log(floats.Sum(featureCount[label]) + alpha*float64(numFeatures))
		logProb := make([]float64, numFeatures)
		for j, count := range featureCount[label] {
			logProb[j] = math.Log(count+alpha) - denom
		}
		nb.featureLogProb[label] = logProb
	}

	return nb, nil
}

// NewNaiveBayes rebuilds a fitted classifier from persisted parameters.
func NewNaiveBayes(classLogPrior []float64, featureLogProb [][]float64) (*NaiveBayes, error) {
	if len(classLogPrior) != models.NumLabels {
		return nil, fmt.Errorf("expected %d class priors, got %d", models.NumLabels, len(classLogPrior))
	}
	if len(featureLogProb) != models.NumLabels {
		return nil, fmt.Errorf("expected %d feature likelihood rows, got %d", models.NumLabels, len(featureLogProb))
	}

	numFeatures := len(featureLogProb[0])
	nb := &NaiveBayes{
		classLogPrior:  append([]float64(nil), classLogPrior...),
		featureLogProb: make([][]float64, models.NumLabels),
	}
	for c, row := range featureLogProb {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("class %s has %d feature likelihoods, expected %d", models.SentimentLabel(c), len(row), numFeatures)
		}
		if !allFinite(row) || !allFinite(classLogPrior[c:c+1]) {
			return nil, fmt.Errorf("class %s has non-finite parameters", models.SentimentLabel(c))
		}
		nb.featureLogProb[c] = append([]float64(nil), row...)
	}

	return nb, nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (nb *NaiveBayes) NumFeatures() int {
	return len(nb.featureLogProb[0])
}

func (nb *NaiveBayes) ClassLogPrior() []float64 {
	return append([]float64(nil), nb.classLogPrior...)
}

func (nb *NaiveBayes) FeatureLogProb() [][]float64 {
	out := make([][]float64, len(nb.featureLogProb))
	for c, row := range nb.featureLogProb {
		out[c] = append([]float64(nil), row...)
	}
	return out
}

// JointLogLikelihood returns log P(c) + sum_j x_j log P(j|c) for every class.
// Indices beyond the fitted feature count are ignored.
func (nb *NaiveBayes) JointLogLikelihood(x SparseVector) []float64 {
	jll := make([]float64, models.NumLabels)
	numFeatures := nb.NumFeatures()

	for c := range jll {
		score := nb.classLogPrior[c]
		row := nb.featureLogProb[c]
		for k, idx := range x.Indices {
			if idx < 0 || idx >= numFeatures {
				continue
			}
			score += x.Values[k] * row[idx]
		}
		jll[c] = score
	}
	return jll
}

// PredictProba returns the posterior distribution over the classes, indexed by
// label.
func (nb *NaiveBayes) PredictProba(x SparseVector) []float64 {
	jll := nb.JointLogLikelihood(x)
	norm := floats.LogSumExp(jll)

	proba := make([]float64, len(jll))
	for c, v := range jll {
		proba[c] = math.Exp(v - norm)
	}
	return proba
}

// Predict returns the most probable class; ties go to the lowest label.
func (nb *NaiveBayes) Predict(x SparseVector) models.SentimentLabel {
	return models.SentimentLabel(floats.MaxIdx(nb.PredictProba(x)))
}
