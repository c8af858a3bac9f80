package models

import (
	"math"
	"math/rand"
)

type DTNode struct {
	Feature   int
	Threshold float64
	Left      *DTNode
	Right     *DTNode
	IsLeaf    bool
	// Proba is the class distribution at a leaf.
	Proba []float64
}

type DecisionTree struct {
	MaxDepth           int
	MinSamplesSplit    int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	NumClasses         int
	Root               *DTNode

	rng *rand.Rand
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MaxDepth: 8, MinSamplesSplit: 20, MaxThresholdsPerFe: 64, Seed: 1}
}

func (dt *DecisionTree) Name() string { return "DecisionTree" }

func (dt *DecisionTree) Fit(X [][]float64, y []int) error {
	if dt.NumClasses <= 0 {
		dt.NumClasses = numClasses(y)
	}
	dt.rng = rand.New(rand.NewSource(dt.Seed))
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	dt.Root = dt.build(X, y, idx, 0)
	return nil
}

func (dt *DecisionTree) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = argmax(dt.predictProbaOne(X[i]))
	}
	return out
}

func (dt *DecisionTree) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = dt.predictProbaOne(X[i])
	}
	return out
}

func (dt *DecisionTree) predictProbaOne(x []float64) []float64 {
	n := dt.Root
	if n == nil {
		return uniform(dt.NumClasses)
	}
	for !n.IsLeaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
		if n == nil {
			return uniform(dt.NumClasses)
		}
	}
	return n.Proba
}

func (dt *DecisionTree) build(X [][]float64, y []int, idx []int, depth int) *DTNode {
	node := &DTNode{}
	proba := classProba(y, idx, dt.NumClasses)
	if len(idx) < dt.MinSamplesSplit || depth >= dt.MaxDepth || isPure(proba) {
		node.IsLeaf = true
		node.Proba = proba
		return node
	}

	bestFeature := -1
	bestThr := 0.0
	bestImp := math.MaxFloat64
	var leftBest, rightBest []int

	nFeats := len(X[0])
	for _, f := range dt.pickFeatures(nFeats) {
		for _, thr := range dt.candidateThresholds(X, idx, f) {
			lIdx, rIdx := splitIdx(X, idx, f, thr)
			if len(lIdx) == 0 || len(rIdx) == 0 {
				continue
			}
			imp := giniImpurity(y, lIdx, rIdx, dt.NumClasses)
			if imp < bestImp {
				bestImp = imp
				bestFeature = f
				bestThr = thr
				leftBest = lIdx
				rightBest = rIdx
			}
		}
	}

	if bestFeature == -1 {
		node.IsLeaf = true
		node.Proba = proba
		return node
	}
	node.Feature = bestFeature
	node.Threshold = bestThr
	node.Left = dt.build(X, y, leftBest, depth+1)
	node.Right = dt.build(X, y, rightBest, depth+1)
	return node
}

func classProba(y []int, idx []int, nClasses int) []float64 {
	p := make([]float64, nClasses)
	for _, i := range idx {
		p[y[i]]++
	}
	for c := range p {
		p[c] /= float64(len(idx))
	}
	return p
}

func isPure(p []float64) bool {
	for _, v := range p {
		if v == 1 {
			return true
		}
	}
	return false
}

func uniform(nClasses int) []float64 {
	if nClasses <= 0 {
		nClasses = 1
	}
	p := make([]float64, nClasses)
	for i := range p {
		p[i] = 1 / float64(nClasses)
	}
	return p
}

func splitIdx(X [][]float64, idx []int, f int, thr float64) ([]int, []int) {
	l := make([]int, 0, len(idx))
	r := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][f] <= thr {
			l = append(l, i)
		} else {
			r = append(r, i)
		}
	}
	return l, r
}

func giniImpurity(y []int, lIdx, rIdx []int, nClasses int) float64 {
	g := func(ids []int) float64 {
		if len(ids) == 0 {
			return 0
		}
		counts := make([]float64, nClasses)
		for _, i := range ids {
			counts[y[i]]++
		}
		gi := 1.0
		n := float64(len(ids))
		for _, c := range counts {
			p := c / n
			gi -= p * p
		}
		return gi
	}
	wl := float64(len(lIdx))
	wr := float64(len(rIdx))
	n := wl + wr
	return (wl/n)*g(lIdx) + (wr/n)*g(rIdx)
}

func (dt *DecisionTree) candidateThresholds(X [][]float64, idx []int, f int) []float64 {
	values := make([]float64, len(idx))
	for j, i := range idx {
		values[j] = X[i][f]
	}
	dt.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	m := dt.MaxThresholdsPerFe
	if m <= 0 || m > len(values) {
		m = len(values)
	}
	return values[:m]
}

func (dt *DecisionTree) pickFeatures(nFeats int) []int {
	idx := make([]int, nFeats)
	for i := range idx {
		idx[i] = i
	}
	if dt.MaxFeatures <= 0 || dt.MaxFeatures >= nFeats {
		return idx
	}
	dt.rng.Shuffle(nFeats, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	return idx[:dt.MaxFeatures]
}
