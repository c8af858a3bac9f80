// Package pipeline wires the harness end to end: subject-disjoint split,
// four concurrent feature-strategy pipelines over one classifier family,
// winner selection, and the single-shot test evaluation.
package pipeline

import (
	"golang.org/x/sync/errgroup"

	"go.uber.org/zap"

	"harbench/internal/config"
	"harbench/internal/data"
	"harbench/internal/evaluation"
	"harbench/internal/features"
	"harbench/internal/models"
	"harbench/internal/split"
)

// Result is everything one run produced: all candidates (including failed
// ones with their reasons), the winner, and the final test-partition score.
type Result struct {
	Partition  *split.Partition
	Candidates []*evaluation.Candidate
	Winner     *evaluation.Candidate
	FinalScore *evaluation.ScoreRecord
	// TimesContended marks runs with concurrent pipelines, whose wall-clock
	// training times are not directly comparable across strategies.
	TimesContended bool
}

// Strategies builds the four fixed candidates from the configured thresholds.
func Strategies(cfg config.Config) []features.Strategy {
	return []features.Strategy{
		features.Identity{},
		features.PCA{VarianceThreshold: cfg.PCAVarianceThreshold},
		features.CorrPrune{Cutoff: cfg.CorrelationCutoff},
		features.CFS{},
	}
}

// Run executes the full evaluation on an already reduced dataset. Per-strategy
// failures are isolated: a failed candidate is excluded from selection but
// never aborts its siblings. The test partition is scored exactly once, for
// the winner only.
func Run(cfg config.Config, ds *data.Dataset, logger *zap.Logger) (*Result, error) {
	part, err := split.Subjects(ds, cfg.SplitSeedTrain, cfg.SplitSeedTest)
	if err != nil {
		return nil, err
	}
	logger.Info("subject partition",
		zap.Strings("train", part.TrainSubjects),
		zap.Strings("validation", part.ValidationSubjects),
		zap.Strings("test", part.TestSubjects),
		zap.Int("train_rows", part.Train.Len()),
		zap.Int("validation_rows", part.Validation.Len()),
		zap.Int("test_rows", part.Test.Len()))

	strategies := Strategies(cfg)
	cands := make([]*evaluation.Candidate, len(strategies))

	var g errgroup.Group
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i, strat := range strategies {
		i, strat := i, strat
		g.Go(func() error {
			cands[i] = runCandidate(cfg, strat, part, logger)
			return nil
		})
	}
	g.Wait()

	for _, c := range cands {
		if c.Err != nil {
			logger.Warn("strategy excluded",
				zap.String("strategy", c.Strategy),
				zap.Error(c.Err))
		}
	}

	winner, err := evaluation.SelectWinner(cands, cfg.SelectionTolerance)
	if err != nil {
		return nil, err
	}
	logger.Info("winner selected",
		zap.String("strategy", winner.Strategy),
		zap.Float64("validation_error", winner.Score.ErrorRate),
		zap.Duration("train_time", winner.Fitted.Elapsed))

	// single-shot generalization estimate on the untouched partition
	testX := winner.Transform.Apply(part.Test.X)
	finalScore, err := evaluation.Score(winner.Fitted, testX, part.Test.Labels, data.NumClasses)
	if err != nil {
		return nil, err
	}
	logger.Info("final test score",
		zap.String("strategy", winner.Strategy),
		zap.Float64("test_error", finalScore.ErrorRate))

	return &Result{
		Partition:      part,
		Candidates:     cands,
		Winner:         winner,
		FinalScore:     finalScore,
		TimesContended: cfg.Concurrency != 1,
	}, nil
}

func runCandidate(cfg config.Config, strat features.Strategy, part *split.Partition, logger *zap.Logger) *evaluation.Candidate {
	cand := &evaluation.Candidate{Strategy: strat.Name()}

	transform, err := strat.Fit(part.Train.X, part.Train.Labels)
	if err != nil {
		cand.Err = err
		return cand
	}
	cand.Transform = transform

	trainX := transform.Apply(part.Train.X)
	factory := func() models.Model {
		bg := models.NewBagging()
		bg.NEstimators = cfg.Estimators
		bg.MaxDepth = cfg.MaxDepth
		bg.MinSamples = cfg.MinSamples
		bg.NumClasses = data.NumClasses
		bg.Seed = cfg.CVSeed
		return bg
	}
	fitted, err := evaluation.TrainModel(factory, trainX, part.Train.Labels, evaluation.CVConfig{
		Folds:       cfg.CVFolds,
		Repeats:     cfg.CVRepeats,
		Seed:        cfg.CVSeed,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		cand.Err = err
		return cand
	}
	cand.Fitted = fitted

	valX := transform.Apply(part.Validation.X)
	score, err := evaluation.Score(fitted, valX, part.Validation.Labels, data.NumClasses)
	if err != nil {
		cand.Err = err
		return cand
	}
	cand.Score = score

	logger.Info("candidate scored",
		zap.String("strategy", strat.Name()),
		zap.Int("features", transform.Cols()),
		zap.Float64("cv_error", fitted.CVError),
		zap.Float64("validation_error", score.ErrorRate),
		zap.Bool("degenerate", score.Degenerate),
		zap.Duration("train_time", fitted.Elapsed))
	return cand
}
