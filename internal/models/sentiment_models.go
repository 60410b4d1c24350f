package models

import "fmt"

// SentimentLabel is the three-way sentiment class. The numeric values are part of
// the artifact format and the JSON responses.
type SentimentLabel int

const (
	Negative SentimentLabel = iota
	Neutral
	Positive
)

// NumLabels is the number of sentiment classes.
const NumLabels = 3

// Labels lists every class in index order.
var Labels = [NumLabels]SentimentLabel{Negative, Neutral, Positive}

func (l SentimentLabel) String() string {
	switch l {
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	case Positive:
		return "Positive"
	default:
		return fmt.Sprintf("SentimentLabel(%d)", int(l))
	}
}

func (l SentimentLabel) Valid() bool {
	return l >= Negative && l <= Positive
}

// PredictionResult is the classifier output for one review.
type PredictionResult struct {
	Sentiment  SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
}
