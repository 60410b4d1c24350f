package training

import (
	"fmt"

	"github.com/spacesedan/reelverdict/internal/models"
)

type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report summarizes predictions against ground truth on a held-out set.
type Report struct {
	Accuracy  float64                                 `json:"accuracy"`
	MacroF1   float64                                 `json:"macro_f1"`
	PerClass  [models.NumLabels]ClassMetrics          `json:"per_class"`
	Confusion [models.NumLabels][models.NumLabels]int `json:"confusion"` // [actual][predicted]
	Total     int                                     `json:"total"`
}

// Evaluate scores predicted labels against actual labels. Metrics with a zero
// denominator are reported as 0.
func Evaluate(actual, predicted []models.SentimentLabel) (Report, error) {
	var r Report
	if len(actual) != len(predicted) {
		return r, fmt.Errorf("got %d actual and %d predicted labels", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return r, fmt.Errorf("nothing to evaluate")
	}

	correct := 0
	for i := range actual {
		a, p := actual[i], predicted[i]
		if !a.Valid() || !p.Valid() {
			return r, fmt.Errorf("example %d has an invalid label", i)
		}
		r.Confusion[a][p]++
		if a == p {
			correct++
		}
	}
	r.Total = len(actual)
	r.Accuracy = float64(correct) / float64(r.Total)

	for _, label := range models.Labels {
		tp := r.Confusion[label][label]
		predictedAs, support := 0, 0
		for _, other := range models.Labels {
			predictedAs += r.Confusion[other][label]
			support += r.Confusion[label][other]
		}

		m := ClassMetrics{
			Precision: ratio(tp, predictedAs),
			Recall:    ratio(tp, support),
			Support:   support,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.PerClass[label] = m
		r.MacroF1 += m.F1 / models.NumLabels
	}

	return r, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
