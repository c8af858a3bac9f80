// Package evaluation trains classifiers under a fixed resampling protocol
// and scores them on held-out partitions.
package evaluation

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"harbench/internal/models"
	"harbench/internal/preprocessing"
)

// CVConfig is the resampling protocol: repeated k-fold with a seed for the
// fold shuffles and a bound on concurrent fold fits.
type CVConfig struct {
	Folds       int
	Repeats     int
	Seed        int64
	Concurrency int
}

func DefaultCVConfig() CVConfig {
	return CVConfig{Folds: 10, Repeats: 3, Seed: 42, Concurrency: 1}
}

// FittedModel is the trained artifact: the final classifier, the scaler
// fixed on the full training matrix, the resampled error estimate, and the
// wall-clock time the whole fit took. Timing is a first-class comparison
// input for selection, not a diagnostic.
type FittedModel struct {
	Model   models.Model
	Scaler  *preprocessing.Scaler
	CVError float64
	Elapsed time.Duration
}

// TrainModel runs repeated k-fold cross-validation with factory-built
// classifiers, then fits the final model on the full standardized matrix.
// Standardization parameters are always estimated on the training side of a
// fold and applied unchanged to its held-out side.
func TrainModel(factory func() models.Model, X [][]float64, y []int, cv CVConfig) (*FittedModel, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, errors.Errorf("have %d rows and %d labels", len(X), len(y))
	}
	folds := cv.Folds
	if folds < 2 {
		folds = 10
	}
	if folds > len(X) {
		folds = len(X)
	}
	repeats := cv.Repeats
	if repeats < 1 {
		repeats = 1
	}

	start := time.Now()

	type foldSlot struct {
		misses int
		total  int
	}
	slots := make([]foldSlot, folds*repeats)

	var g errgroup.Group
	if cv.Concurrency > 0 {
		g.SetLimit(cv.Concurrency)
	}
	for r := 0; r < repeats; r++ {
		rng := rand.New(rand.NewSource(cv.Seed + int64(r)))
		indices := rng.Perm(len(X))
		for f := 0; f < folds; f++ {
			slot := r*folds + f
			lo := f * len(X) / folds
			hi := (f + 1) * len(X) / folds
			testIdx := indices[lo:hi]
			trainIdx := append(append([]int(nil), indices[:lo]...), indices[hi:]...)
			g.Go(func() error {
				misses, total, err := fitFold(factory, X, y, trainIdx, testIdx)
				if err != nil {
					return err
				}
				slots[slot] = foldSlot{misses: misses, total: total}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	misses, total := 0, 0
	for _, s := range slots {
		misses += s.misses
		total += s.total
	}
	cvError := 0.0
	if total > 0 {
		cvError = float64(misses) / float64(total)
	}

	scaler := preprocessing.NewScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}
	final := factory()
	if err := final.Fit(scaled, y); err != nil {
		return nil, errors.Wrap(err, "final fit")
	}

	return &FittedModel{
		Model:   final,
		Scaler:  scaler,
		CVError: cvError,
		Elapsed: time.Since(start),
	}, nil
}

func fitFold(factory func() models.Model, X [][]float64, y []int, trainIdx, testIdx []int) (misses, total int, err error) {
	if len(testIdx) == 0 {
		return 0, 0, nil
	}
	Xtr := make([][]float64, len(trainIdx))
	ytr := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		Xtr[i] = X[idx]
		ytr[i] = y[idx]
	}
	Xte := make([][]float64, len(testIdx))
	yte := make([]int, len(testIdx))
	for i, idx := range testIdx {
		Xte[i] = X[idx]
		yte[i] = y[idx]
	}

	scaler := preprocessing.NewScaler()
	Xtr, err = scaler.FitTransform(Xtr)
	if err != nil {
		return 0, 0, err
	}
	Xte, err = scaler.Transform(Xte)
	if err != nil {
		return 0, 0, err
	}

	mdl := factory()
	if err := mdl.Fit(Xtr, ytr); err != nil {
		return 0, 0, errors.Wrap(err, "fold fit")
	}
	preds := mdl.Predict(Xte)
	for i, p := range preds {
		if p != yte[i] {
			misses++
		}
	}
	return misses, len(yte), nil
}

// Predict runs a feature matrix through the fitted scaler and classifier.
func (fm *FittedModel) Predict(X [][]float64) ([]int, error) {
	scaled, err := fm.Scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	return fm.Model.Predict(scaled), nil
}
