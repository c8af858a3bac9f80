package evaluation

import (
	"strings"

	"github.com/pkg/errors"

	"harbench/internal/features"
)

// ErrNoViableCandidate reports a selection round with nothing left to pick.
var ErrNoViableCandidate = errors.New("no viable candidate")

// Candidate ties a feature strategy to its fitted artifacts and validation
// score. A candidate whose strategy or training failed carries the error and
// nothing else.
type Candidate struct {
	Strategy  string
	Transform features.Transform
	Fitted    *FittedModel
	Score     *ScoreRecord
	Err       error
}

// Viable reports whether the candidate survived its own pipeline.
func (c *Candidate) Viable() bool { return c.Err == nil && c.Score != nil }

// SelectWinner applies the decision rule to the candidate set:
//
//  1. drop degenerate candidates (prediction coverage below the full class
//     set), unless every viable candidate is degenerate;
//  2. drop candidates whose validation error exceeds the best by more than
//     tolerance;
//  3. of the tied rest, pick the lowest training time.
func SelectWinner(cands []*Candidate, tolerance float64) (*Candidate, error) {
	viable := []*Candidate{}
	reasons := []string{}
	for _, c := range cands {
		if c.Viable() {
			viable = append(viable, c)
		} else if c.Err != nil {
			reasons = append(reasons, c.Strategy+": "+c.Err.Error())
		}
	}
	if len(viable) == 0 {
		if len(reasons) == 0 {
			return nil, errors.Wrap(ErrNoViableCandidate, "empty candidate set")
		}
		return nil, errors.Wrapf(ErrNoViableCandidate, "all strategies failed: %s", strings.Join(reasons, "; "))
	}

	pool := []*Candidate{}
	for _, c := range viable {
		if !c.Score.Degenerate {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = viable
	}

	minErr := pool[0].Score.ErrorRate
	for _, c := range pool[1:] {
		if c.Score.ErrorRate < minErr {
			minErr = c.Score.ErrorRate
		}
	}
	tied := []*Candidate{}
	for _, c := range pool {
		if c.Score.ErrorRate <= minErr+tolerance {
			tied = append(tied, c)
		}
	}

	winner := tied[0]
	for _, c := range tied[1:] {
		if c.Fitted.Elapsed < winner.Fitted.Elapsed {
			winner = c
		}
	}
	return winner, nil
}
