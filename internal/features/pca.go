package features

import (
	"github.com/pkg/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA projects features onto the minimum number of leading principal
// components whose cumulative explained variance reaches VarianceThreshold.
type PCA struct {
	VarianceThreshold float64
}

func (PCA) Name() string { return "pca" }

func (p PCA) Fit(X [][]float64, _ []int) (Transform, error) {
	rows, cols, err := checkShape(X)
	if err != nil {
		return nil, err
	}
	if rows < cols {
		return nil, errors.Wrapf(ErrDegenerateInput, "%d rows for %d columns", rows, cols)
	}

	mean := make([]float64, cols)
	for _, row := range X {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(rows)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(toDense(X), nil); !ok {
		return nil, errors.Wrap(ErrDegenerateInput, "principal component decomposition failed")
	}
	vars := pc.VarsTo(nil)
	total := 0.0
	for _, v := range vars {
		total += v
	}
	if total <= 0 {
		return nil, errors.Wrap(ErrDegenerateInput, "zero total variance")
	}
	threshold := p.VarianceThreshold
	if threshold <= 0 {
		threshold = 0.5
	}
	keep := len(vars)
	cum := 0.0
	for i, v := range vars {
		cum += v / total
		if cum >= threshold {
			keep = i + 1
			break
		}
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	proj := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		proj[j] = make([]float64, keep)
		for k := 0; k < keep; k++ {
			proj[j][k] = vecs.At(j, k)
		}
	}
	return &ProjectionTransform{Mean: mean, Proj: proj}, nil
}

// ProjectionTransform centers rows on the training mean and projects them
// through the fitted component matrix (input columns × kept components).
type ProjectionTransform struct {
	Mean []float64
	Proj [][]float64
}

func (t *ProjectionTransform) Cols() int {
	if len(t.Proj) == 0 {
		return 0
	}
	return len(t.Proj[0])
}

func (t *ProjectionTransform) Apply(X [][]float64) [][]float64 {
	keep := t.Cols()
	out := make([][]float64, len(X))
	for i, row := range X {
		pr := make([]float64, keep)
		for j, v := range row {
			centered := v - t.Mean[j]
			for k := 0; k < keep; k++ {
				pr[k] += centered * t.Proj[j][k]
			}
		}
		out[i] = pr
	}
	return out
}
