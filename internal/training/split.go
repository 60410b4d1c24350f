package training

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/spacesedan/reelverdict/internal/models"
)

// StratifiedSplit partitions example indices into train and test sets so that
// every label keeps its proportion in both. Each class contributes
// round(n*testRatio) examples to the test set, clamped so both sides keep at
// least one. The same labels, ratio and seed always give the same split.
func StratifiedSplit(labels []models.SentimentLabel, testRatio float64, seed uint64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 || math.IsNaN(testRatio) {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	byClass := make([][]int, models.NumLabels)
	for i, label := range labels {
		if !label.Valid() {
			return nil, nil, fmt.Errorf("example %d has invalid label %d", i, int(label))
		}
		byClass[label] = append(byClass[label], i)
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	for _, label := range models.Labels {
		idx := byClass[label]
		if len(idx) < MinExamplesPerClass {
			return nil, nil, &TrainingDataError{Class: label, Count: len(idx)}
		}

		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(float64(len(idx)) * testRatio))
		nTest = max(1, min(nTest, len(idx)-1))

		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}
