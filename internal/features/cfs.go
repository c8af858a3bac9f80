package features

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CFS selects the feature subset with the best merit, a heuristic trading the
// average feature-class correlation against the average feature-feature
// correlation:
//
//	merit = k*rcf / sqrt(k + k*(k-1)*rff)
//
// Subsets are explored best-first, adding one feature at a time; the search
// halts after MaxStale consecutive expansions that fail to improve the best
// merit seen.
type CFS struct {
	// MaxStale defaults to 5.
	MaxStale int
}

func (CFS) Name() string { return "cfs" }

type cfsNode struct {
	sel   []int
	merit float64
}

func (c CFS) Fit(X [][]float64, y []int) (Transform, error) {
	rows, cols, err := checkShape(X)
	if err != nil {
		return nil, err
	}
	if rows < 2 {
		return nil, errors.Wrapf(ErrDegenerateInput, "%d rows, need at least 2 for correlation", rows)
	}
	if len(y) != rows {
		return nil, errors.Errorf("have %d labels for %d rows", len(y), rows)
	}
	maxStale := c.MaxStale
	if maxStale <= 0 {
		maxStale = 5
	}

	corr := absCorrMatrix(X)
	rcf := classCorrelation(X, y)

	merit := func(sel []int) float64 {
		k := float64(len(sel))
		sumCF := 0.0
		for _, j := range sel {
			sumCF += rcf[j]
		}
		sumFF := 0.0
		for a := 0; a < len(sel); a++ {
			for b := a + 1; b < len(sel); b++ {
				sumFF += corr.At(sel[a], sel[b])
			}
		}
		var meanFF float64
		if len(sel) > 1 {
			meanFF = sumFF / (k * (k - 1) / 2)
		}
		denom := math.Sqrt(k + k*(k-1)*meanFF)
		if denom == 0 {
			return 0
		}
		return sumCF / denom
	}

	key := func(sel []int) string {
		parts := make([]string, len(sel))
		for i, j := range sel {
			parts[i] = strconv.Itoa(j)
		}
		return strings.Join(parts, ",")
	}

	open := []cfsNode{{sel: nil, merit: 0}}
	visited := map[string]bool{"": true}
	var best cfsNode
	stale := 0

	for len(open) > 0 && stale < maxStale {
		// pop the open node with the highest merit
		bi := 0
		for i := range open {
			if open[i].merit > open[bi].merit {
				bi = i
			}
		}
		node := open[bi]
		open = append(open[:bi], open[bi+1:]...)

		improved := false
		for j := 0; j < cols; j++ {
			if containsInt(node.sel, j) {
				continue
			}
			child := append(append([]int(nil), node.sel...), j)
			sort.Ints(child)
			k := key(child)
			if visited[k] {
				continue
			}
			visited[k] = true
			m := merit(child)
			open = append(open, cfsNode{sel: child, merit: m})
			if m > best.merit {
				best = cfsNode{sel: child, merit: m}
				improved = true
			}
		}
		if improved {
			stale = 0
		} else {
			stale++
		}
	}

	if len(best.sel) == 0 {
		return nil, errors.Wrap(ErrDegenerateInput, "merit search selected no columns")
	}
	return &ColumnSelect{Indices: best.sel}, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
