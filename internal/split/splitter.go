// Package split partitions a dataset by subject so that no participant's rows
// reach more than one of the train/validation/test tables.
package split

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"harbench/internal/data"
)

// ErrInsufficientSubjects reports fewer than three distinct subjects; one is
// needed for each partition.
var ErrInsufficientSubjects = errors.New("insufficient subjects")

// Partition holds the three subject-disjoint tables of a run. Train carries
// all but two subjects, the remaining two go one each to Test and Validation.
type Partition struct {
	Train      *data.Dataset
	Validation *data.Dataset
	Test       *data.Dataset

	TrainSubjects      []string
	ValidationSubjects []string
	TestSubjects       []string
}

// rankedSample draws one pseudo-random value per subject from a generator
// seeded with seed, ranks subjects by the draw (highest first), and returns
// the top k and the rest. Subjects are sorted before drawing so the result
// depends only on the subject set and the seed, not on row order.
func rankedSample(subjects []string, seed int64, k int) (picked, rest []string) {
	sorted := append([]string(nil), subjects...)
	sort.Strings(sorted)
	rng := rand.New(rand.NewSource(seed))
	draw := make(map[string]float64, len(sorted))
	for _, s := range sorted {
		draw[s] = rng.Float64()
	}
	sort.SliceStable(sorted, func(i, j int) bool { return draw[sorted[i]] > draw[sorted[j]] })
	return sorted[:k], sorted[k:]
}

// Subjects partitions ds into train/validation/test with pairwise-disjoint
// subject sets. The first seed ranks all subjects and sends the top n-2 to
// training; the second seed ranks the two holdouts and sends the higher one
// to test, the other to validation. Identical seeds on identical input give
// identical assignments.
func Subjects(ds *data.Dataset, seedTrain, seedTest int64) (*Partition, error) {
	subjects := ds.SubjectSet()
	if len(subjects) < 3 {
		return nil, errors.Wrapf(ErrInsufficientSubjects, "have %d subjects, need at least 3", len(subjects))
	}

	trainSubjects, holdout := rankedSample(subjects, seedTrain, len(subjects)-2)
	testSubjects, valSubjects := rankedSample(holdout, seedTest, 1)

	return &Partition{
		Train:              ds.FilterSubjects(trainSubjects),
		Validation:         ds.FilterSubjects(valSubjects),
		Test:               ds.FilterSubjects(testSubjects),
		TrainSubjects:      trainSubjects,
		ValidationSubjects: valSubjects,
		TestSubjects:       testSubjects,
	}, nil
}
