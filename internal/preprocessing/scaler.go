// Package preprocessing provides the center/scale step applied uniformly
// before every classifier fit. Parameters are fixed from the training fold
// and reused unchanged for any later transform.
package preprocessing

import (
	"math"

	"github.com/pkg/errors"
)

// Scaler standardizes each feature to zero mean and unit variance.
type Scaler struct {
	Mean   []float64
	Std    []float64
	Fitted bool
}

func NewScaler() *Scaler { return &Scaler{} }

// Fit estimates per-column mean and standard deviation. Zero-variance
// columns get std 1 so Transform leaves them centered but unscaled.
func (s *Scaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("empty matrix")
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	n := float64(len(X))
	for _, row := range X {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, row := range X {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / n)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.Fitted = true
	return nil
}

// Transform standardizes X with the fitted parameters.
func (s *Scaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.Fitted {
		return nil, errors.New("scaler must be fitted before transform")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		sc := make([]float64, len(row))
		for j, v := range row {
			sc[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = sc
	}
	return out, nil
}

// FitTransform fits on X and returns the standardized copy.
func (s *Scaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
