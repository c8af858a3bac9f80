package evaluation

import (
	"time"

	"github.com/pkg/errors"
)

// ScoreRecord is the outcome of applying one fitted model to one partition.
// Confusion is predicted class by true class over the full fixed class set;
// Coverage lists the classes the model actually predicted at least once.
type ScoreRecord struct {
	ErrorRate  float64       `json:"error_rate"`
	Confusion  [][]int       `json:"confusion"`
	Coverage   []int         `json:"coverage"`
	Degenerate bool          `json:"degenerate"`
	CVError    float64       `json:"cv_error"`
	TrainTime  time.Duration `json:"train_time"`
}

// Score evaluates fm on (X, y). nClasses fixes the confusion matrix size so
// every compared model shares one class ordering.
func Score(fm *FittedModel, X [][]float64, y []int, nClasses int) (*ScoreRecord, error) {
	if len(X) != len(y) {
		return nil, errors.Errorf("have %d rows and %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, errors.New("empty evaluation partition")
	}
	preds, err := fm.Predict(X)
	if err != nil {
		return nil, err
	}

	confusion := make([][]int, nClasses)
	for i := range confusion {
		confusion[i] = make([]int, nClasses)
	}
	misses := 0
	seen := make([]bool, nClasses)
	for i, p := range preds {
		if p < 0 || p >= nClasses || y[i] < 0 || y[i] >= nClasses {
			return nil, errors.Errorf("class out of range: predicted %d, true %d", p, y[i])
		}
		confusion[p][y[i]]++
		seen[p] = true
		if p != y[i] {
			misses++
		}
	}

	coverage := []int{}
	for c, ok := range seen {
		if ok {
			coverage = append(coverage, c)
		}
	}

	return &ScoreRecord{
		ErrorRate:  float64(misses) / float64(len(y)),
		Confusion:  confusion,
		Coverage:   coverage,
		Degenerate: len(coverage) < nClasses,
		CVError:    fm.CVError,
		TrainTime:  fm.Elapsed,
	}, nil
}
