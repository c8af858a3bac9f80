// Package models holds the classifier family behind the harness. Anything
// honoring Model is substitutable; the pipeline defaults to Bagging.
package models

type Model interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	// PredictProba returns one per-class distribution per row.
	PredictProba(X [][]float64) [][]float64
	Name() string
}

// numClasses infers the class count from labels 0..k-1.
func numClasses(y []int) int {
	max := 0
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max + 1
}

func argmax(p []float64) int {
	best := 0
	for i, v := range p {
		if v > p[best] {
			best = i
		}
	}
	return best
}
