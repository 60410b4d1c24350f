package training

import (
	"errors"
	"fmt"

	"github.com/spacesedan/reelverdict/internal/models"
)

// ErrTrainingData is matched by every TrainingDataError.
var ErrTrainingData = errors.New("training data is unusable")

// TrainingDataError reports a class without enough examples for a stratified
// split.
type TrainingDataError struct {
	Class models.SentimentLabel
	Count int
}

func (e *TrainingDataError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("no training examples for class %s", e.Class)
	}
	return fmt.Sprintf("class %s has %d training example(s), need at least %d for a stratified split",
		e.Class, e.Count, MinExamplesPerClass)
}

func (e *TrainingDataError) Is(target error) bool {
	return target == ErrTrainingData
}
