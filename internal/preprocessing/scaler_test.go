package preprocessing

import (
	"math"
	"testing"

	"gotest.tools/assert"
)

func TestScalerStandardizes(t *testing.T) {
	X := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	s := NewScaler()
	out, err := s.FitTransform(X)
	assert.NilError(t, err)

	for j := 0; j < 2; j++ {
		mean, varSum := 0.0, 0.0
		for i := range out {
			mean += out[i][j]
		}
		mean /= float64(len(out))
		for i := range out {
			d := out[i][j] - mean
			varSum += d * d
		}
		sd := math.Sqrt(varSum / float64(len(out)))
		assert.Assert(t, math.Abs(mean) < 1e-12, "column %d mean %v", j, mean)
		assert.Assert(t, math.Abs(sd-1) < 1e-12, "column %d std %v", j, sd)
	}
}

func TestScalerParamsFixedFromFit(t *testing.T) {
	s := NewScaler()
	_, err := s.FitTransform([][]float64{{0}, {10}})
	assert.NilError(t, err)
	assert.Equal(t, s.Mean[0], 5.0)

	out, err := s.Transform([][]float64{{5}, {1000}})
	assert.NilError(t, err)
	assert.Equal(t, out[0][0], 0.0)
	// transforming new data must not move the fitted parameters
	assert.Equal(t, s.Mean[0], 5.0)
}

func TestScalerZeroVarianceColumn(t *testing.T) {
	s := NewScaler()
	out, err := s.FitTransform([][]float64{{7, 1}, {7, 2}})
	assert.NilError(t, err)
	assert.Equal(t, out[0][0], 0.0)
	assert.Equal(t, out[1][0], 0.0)
}

func TestScalerUnfitted(t *testing.T) {
	_, err := NewScaler().Transform([][]float64{{1}})
	assert.ErrorContains(t, err, "fitted")
}
