package models

import (
	"math/rand"
	"testing"

	"gotest.tools/assert"
)

// three well-separated clusters, one per class
func clusters(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range X {
		c := i % 3
		y[i] = c
		X[i] = []float64{float64(c)*10 + rng.NormFloat64(), float64(c)*-10 + rng.NormFloat64()}
	}
	return X, y
}

func accuracy(y, p []int) float64 {
	hits := 0
	for i := range y {
		if y[i] == p[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(y))
}

func TestDecisionTreeSeparatesClusters(t *testing.T) {
	X, y := clusters(300, 1)
	dt := NewDecisionTree()
	dt.MinSamplesSplit = 5
	assert.NilError(t, dt.Fit(X, y))
	assert.Equal(t, dt.NumClasses, 3)
	assert.Assert(t, accuracy(y, dt.Predict(X)) > 0.95)
}

func TestDecisionTreeDeterministicWithSeed(t *testing.T) {
	X, y := clusters(120, 2)
	a := NewDecisionTree()
	a.MinSamplesSplit = 5
	a.Seed = 77
	b := NewDecisionTree()
	b.MinSamplesSplit = 5
	b.Seed = 77
	assert.NilError(t, a.Fit(X, y))
	assert.NilError(t, b.Fit(X, y))
	pa := a.Predict(X)
	pb := b.Predict(X)
	for i := range pa {
		assert.Equal(t, pa[i], pb[i])
	}
}

func TestBaggingSeparatesClusters(t *testing.T) {
	X, y := clusters(300, 3)
	bg := NewBagging()
	bg.NEstimators = 7
	bg.MinSamples = 5
	assert.NilError(t, bg.Fit(X, y))
	assert.Equal(t, len(bg.Trees), 7)
	assert.Assert(t, accuracy(y, bg.Predict(X)) > 0.95)
}

func TestBaggingProbaDistributions(t *testing.T) {
	X, y := clusters(90, 4)
	bg := NewBagging()
	bg.NEstimators = 5
	bg.MinSamples = 5
	assert.NilError(t, bg.Fit(X, y))
	for _, p := range bg.PredictProba(X[:10]) {
		sum := 0.0
		for _, v := range p {
			assert.Assert(t, v >= 0)
			sum += v
		}
		assert.Assert(t, sum > 0.999 && sum < 1.001, "distribution sums to %v", sum)
	}
}

func TestRandomForestSeparatesClusters(t *testing.T) {
	X, y := clusters(300, 5)
	rf := NewRandomForest()
	rf.NEstimators = 7
	rf.MinSamples = 5
	assert.NilError(t, rf.Fit(X, y))
	assert.Assert(t, accuracy(y, rf.Predict(X)) > 0.9)
}
