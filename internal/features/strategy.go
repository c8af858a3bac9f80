// Package features holds the candidate feature representations compared by
// the harness. A Strategy is fit once on the training matrix; the resulting
// Transform carries the fitted parameters and is applied unchanged to any
// other matrix, so validation and test data never leak into the fit.
package features

import (
	"encoding/gob"

	"github.com/pkg/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateInput reports a training matrix a strategy cannot be fit on.
var ErrDegenerateInput = errors.New("degenerate input")

// Transform is a fitted feature mapping.
type Transform interface {
	// Apply maps a matrix into the fitted representation. It never
	// re-estimates parameters from its input.
	Apply(X [][]float64) [][]float64
	// Cols is the width of matrices produced by Apply.
	Cols() int
}

// Strategy produces a Transform from a labeled training matrix.
type Strategy interface {
	Name() string
	Fit(X [][]float64, y []int) (Transform, error)
}

func init() {
	gob.Register(&IdentityTransform{})
	gob.Register(&ProjectionTransform{})
	gob.Register(&ColumnSelect{})
}

// ColumnSelect keeps a fixed set of input columns. It is the fitted form of
// both correlation-based strategies.
type ColumnSelect struct {
	Indices []int
}

func (t *ColumnSelect) Cols() int { return len(t.Indices) }

func (t *ColumnSelect) Apply(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		sel := make([]float64, len(t.Indices))
		for k, j := range t.Indices {
			sel[k] = row[j]
		}
		out[i] = sel
	}
	return out
}

func checkShape(X [][]float64) (rows, cols int, err error) {
	rows = len(X)
	if rows == 0 {
		return 0, 0, errors.Wrap(ErrDegenerateInput, "empty training matrix")
	}
	cols = len(X[0])
	if cols < 2 {
		return rows, cols, errors.Wrapf(ErrDegenerateInput, "%d feature columns, need at least 2", cols)
	}
	return rows, cols, nil
}

func toDense(X [][]float64) *mat.Dense {
	r, c := len(X), len(X[0])
	m := mat.NewDense(r, c, nil)
	for i, row := range X {
		m.SetRow(i, row)
	}
	return m
}

// absCorrMatrix returns the pairwise absolute Pearson correlations of the
// columns of X. NaN cells (zero-variance columns) come back as 0.
func absCorrMatrix(X [][]float64) *mat.SymDense {
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, toDense(X), nil)
	c := corr.SymmetricDim()
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			v := corr.At(i, j)
			if v != v { // NaN
				v = 0
			} else if v < 0 {
				v = -v
			}
			corr.SetSym(i, j, v)
		}
	}
	return &corr
}

// classCorrelation returns per-column absolute correlation between the
// feature and the numeric class index.
func classCorrelation(X [][]float64, y []int) []float64 {
	r, c := len(X), len(X[0])
	ys := make([]float64, r)
	for i, v := range y {
		ys[i] = float64(v)
	}
	col := make([]float64, r)
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = X[i][j]
		}
		v := stat.Correlation(col, ys, nil)
		if v != v {
			v = 0
		} else if v < 0 {
			v = -v
		}
		out[j] = v
	}
	return out
}
