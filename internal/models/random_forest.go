package models

import (
	"math"
	"math/rand"
)

// RandomForest is Bagging with per-split feature subsampling, kept as a
// substitutable alternative classifier.
type RandomForest struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	NumClasses         int
	Trees              []*DecisionTree
}

func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 25, MaxDepth: 8, MinSamples: 20, MaxThresholdsPerFe: 32, Seed: 1}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if rf.NEstimators <= 0 {
		rf.NEstimators = 25
	}
	if rf.NumClasses <= 0 {
		rf.NumClasses = numClasses(y)
	}
	n := len(X)
	nFeats := len(X[0])
	if rf.MaxFeatures <= 0 {
		rf.MaxFeatures = int(math.Max(1, math.Sqrt(float64(nFeats))))
	}
	rng := rand.New(rand.NewSource(rf.Seed))
	rf.Trees = make([]*DecisionTree, 0, rf.NEstimators)
	for k := 0; k < rf.NEstimators; k++ {
		Xb := make([][]float64, n)
		yb := make([]int, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			Xb[i] = X[j]
			yb[i] = y[j]
		}
		dt := NewDecisionTree()
		dt.MaxDepth = rf.MaxDepth
		dt.MinSamplesSplit = rf.MinSamples
		dt.MaxThresholdsPerFe = rf.MaxThresholdsPerFe
		dt.MaxFeatures = rf.MaxFeatures
		dt.NumClasses = rf.NumClasses
		dt.Seed = rng.Int63()
		if err := dt.Fit(Xb, yb); err != nil {
			return err
		}
		rf.Trees = append(rf.Trees, dt)
	}
	return nil
}

func (rf *RandomForest) Predict(X [][]float64) []int {
	ps := rf.PredictProba(X)
	out := make([]int, len(ps))
	for i := range ps {
		out[i] = argmax(ps[i])
	}
	return out
}

func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	n := len(X)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, rf.NumClasses)
	}
	if len(rf.Trees) == 0 {
		for i := range out {
			out[i] = uniform(rf.NumClasses)
		}
		return out
	}
	for _, dt := range rf.Trees {
		p := dt.PredictProba(X)
		for i := 0; i < n; i++ {
			for c := range out[i] {
				out[i][c] += p[i][c]
			}
		}
	}
	m := float64(len(rf.Trees))
	for i := range out {
		for c := range out[i] {
			out[i][c] /= m
		}
	}
	return out
}
