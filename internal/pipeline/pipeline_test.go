package pipeline

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gotest.tools/assert"

	"harbench/internal/config"
	"harbench/internal/data"
	"harbench/internal/evaluation"
	"harbench/internal/features"
)

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.CVFolds = 3
	cfg.CVRepeats = 1
	cfg.Estimators = 3
	cfg.MaxDepth = 4
	cfg.MinSamples = 10
	cfg.Concurrency = 2
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	cfg := fastConfig()
	ds := data.GenerateSynthetic(600, 3)

	res, err := Run(cfg, ds, zap.NewNop())
	assert.NilError(t, err)

	assert.Equal(t, len(res.Partition.TrainSubjects), 4)
	assert.Equal(t, len(res.Partition.ValidationSubjects), 1)
	assert.Equal(t, len(res.Partition.TestSubjects), 1)
	assert.Equal(t, len(res.Candidates), 4)

	assert.Assert(t, res.Winner != nil)
	assert.Assert(t, res.FinalScore.ErrorRate >= 0 && res.FinalScore.ErrorRate <= 1)

	total := 0
	diag := 0
	for i, row := range res.FinalScore.Confusion {
		for j, v := range row {
			total += v
			if i == j {
				diag += v
			}
		}
	}
	assert.Equal(t, total, res.Partition.Test.Len())
	assert.Assert(t, diag <= total)
}

func TestRunIsolatesStrategyFailure(t *testing.T) {
	cfg := fastConfig()
	cfg.MinSamples = 2
	// 36 rows leave the training partition with fewer rows than the 52
	// columns: degenerate input for the projection strategy only. The run
	// must finish on the surviving candidates and keep the failure visible.
	ds := data.GenerateSynthetic(36, 4)
	res, err := Run(cfg, ds, zap.NewNop())
	assert.NilError(t, err)

	var pca *evaluation.Candidate
	for _, c := range res.Candidates {
		if c.Strategy == "pca" {
			pca = c
		}
	}
	assert.Assert(t, pca != nil)
	assert.Assert(t, stderrors.Is(pca.Err, features.ErrDegenerateInput))
	assert.Assert(t, res.Winner.Strategy != "pca")
}

func TestRunDeterministicPartition(t *testing.T) {
	cfg := fastConfig()
	cfg.Concurrency = 3
	ds := data.GenerateSynthetic(600, 5)
	a, err := Run(cfg, ds, zap.NewNop())
	assert.NilError(t, err)
	b, err := Run(cfg, ds, zap.NewNop())
	assert.NilError(t, err)
	// partitioning happens before any parallel training and depends only on
	// the two seeds
	assert.DeepEqual(t, a.Partition.TrainSubjects, b.Partition.TrainSubjects)
	assert.DeepEqual(t, a.Partition.TestSubjects, b.Partition.TestSubjects)
}

func TestBundleRoundTrip(t *testing.T) {
	cfg := fastConfig()
	ds := data.GenerateSynthetic(600, 6)
	res, err := Run(cfg, ds, zap.NewNop())
	assert.NilError(t, err)

	path := filepath.Join(t.TempDir(), "winner.gob")
	assert.NilError(t, SaveBundle(path, ds.Columns, res.Winner))

	b, err := LoadBundle(path)
	assert.NilError(t, err)
	assert.Equal(t, b.Strategy, res.Winner.Strategy)

	want, err := res.Winner.Fitted.Predict(res.Winner.Transform.Apply(ds.X[:20]))
	assert.NilError(t, err)
	got, err := b.Predict(ds.X[:20])
	assert.NilError(t, err)
	assert.DeepEqual(t, want, got)
}
