package features

import (
	"github.com/pkg/errors"
)

// CorrPrune greedily removes one member of every feature pair whose absolute
// correlation exceeds Cutoff, dropping the feature with the higher mean
// absolute correlation against everything still standing.
type CorrPrune struct {
	Cutoff float64
}

func (CorrPrune) Name() string { return "corr-prune" }

func (c CorrPrune) Fit(X [][]float64, _ []int) (Transform, error) {
	rows, cols, err := checkShape(X)
	if err != nil {
		return nil, err
	}
	if rows < 2 {
		return nil, errors.Wrapf(ErrDegenerateInput, "%d rows, need at least 2 for correlation", rows)
	}
	cutoff := c.Cutoff
	if cutoff <= 0 {
		cutoff = 0.6
	}

	corr := absCorrMatrix(X)
	alive := make([]bool, cols)
	for j := range alive {
		alive[j] = true
	}

	meanAbs := func(j int) float64 {
		sum, n := 0.0, 0
		for k := 0; k < cols; k++ {
			if k != j && alive[k] {
				sum += corr.At(j, k)
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}

	for {
		bi, bj, best := -1, -1, cutoff
		for i := 0; i < cols; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < cols; j++ {
				if alive[j] && corr.At(i, j) > best {
					bi, bj, best = i, j, corr.At(i, j)
				}
			}
		}
		if bi < 0 {
			break
		}
		if meanAbs(bi) >= meanAbs(bj) {
			alive[bi] = false
		} else {
			alive[bj] = false
		}
	}

	keep := []int{}
	for j, ok := range alive {
		if ok {
			keep = append(keep, j)
		}
	}
	if len(keep) == 0 {
		return nil, errors.Wrap(ErrDegenerateInput, "pruning removed every column")
	}
	return &ColumnSelect{Indices: keep}, nil
}
