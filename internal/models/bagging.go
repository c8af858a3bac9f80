package models

import "math/rand"

// Bagging is the bootstrap-aggregated tree ensemble the harness trains for
// every feature representation. Trees vote through averaged class
// distributions.
type Bagging struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	Seed               int64
	NumClasses         int
	Trees              []*DecisionTree
}

func NewBagging() *Bagging {
	return &Bagging{NEstimators: 25, MaxDepth: 8, MinSamples: 20, MaxThresholdsPerFe: 32, Seed: 1}
}

func (bg *Bagging) Name() string { return "Bagging" }

func (bg *Bagging) Fit(X [][]float64, y []int) error {
	if bg.NEstimators <= 0 {
		bg.NEstimators = 25
	}
	if bg.NumClasses <= 0 {
		bg.NumClasses = numClasses(y)
	}
	rng := rand.New(rand.NewSource(bg.Seed))
	n := len(X)
	bg.Trees = make([]*DecisionTree, 0, bg.NEstimators)
	for k := 0; k < bg.NEstimators; k++ {
		Xb := make([][]float64, n)
		yb := make([]int, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			Xb[i] = X[j]
			yb[i] = y[j]
		}
		dt := NewDecisionTree()
		dt.MaxDepth = bg.MaxDepth
		dt.MinSamplesSplit = bg.MinSamples
		dt.MaxThresholdsPerFe = bg.MaxThresholdsPerFe
		dt.MaxFeatures = 0
		dt.NumClasses = bg.NumClasses
		dt.Seed = rng.Int63()
		if err := dt.Fit(Xb, yb); err != nil {
			return err
		}
		bg.Trees = append(bg.Trees, dt)
	}
	return nil
}

func (bg *Bagging) Predict(X [][]float64) []int {
	ps := bg.PredictProba(X)
	out := make([]int, len(ps))
	for i := range ps {
		out[i] = argmax(ps[i])
	}
	return out
}

func (bg *Bagging) PredictProba(X [][]float64) [][]float64 {
	n := len(X)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, bg.NumClasses)
	}
	if len(bg.Trees) == 0 {
		for i := range out {
			out[i] = uniform(bg.NumClasses)
		}
		return out
	}
	for _, dt := range bg.Trees {
		p := dt.PredictProba(X)
		for i := 0; i < n; i++ {
			for c := range out[i] {
				out[i][c] += p[i][c]
			}
		}
	}
	m := float64(len(bg.Trees))
	for i := range out {
		for c := range out[i] {
			out[i][c] /= m
		}
	}
	return out
}
