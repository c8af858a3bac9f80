package data

import (
	"math"
	"math/rand"
)

// DefaultSubjects matches the six-participant roster of the source recording.
var DefaultSubjects = []string{"adelmo", "carlitos", "charles", "eurico", "jeremy", "pedro"}

// GenerateSynthetic builds a seeded multi-subject dataset with the reduced
// sensor schema. Each class shifts a different band of columns so that a tree
// ensemble can actually separate them; each subject carries its own constant
// offset so that subject-disjoint splits matter. Rows cycle through subjects
// and classes, giving a balanced table.
func GenerateSynthetic(n int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	cols := SensorColumns()
	ds := &Dataset{Columns: cols}

	subjectOffset := make(map[string]float64, len(DefaultSubjects))
	for i, s := range DefaultSubjects {
		subjectOffset[s] = float64(i) * 0.5
	}

	for i := 0; i < n; i++ {
		subject := DefaultSubjects[i%len(DefaultSubjects)]
		class := (i / len(DefaultSubjects)) % NumClasses
		row := make([]float64, len(cols))
		for j := range cols {
			mean := subjectOffset[subject]
			// each class dominates a distinct band of columns
			if j%NumClasses == class {
				mean += 3.0 + math.Sin(float64(j))
			}
			row[j] = mean + rng.NormFloat64()
		}
		ds.Subjects = append(ds.Subjects, subject)
		ds.Labels = append(ds.Labels, class)
		ds.X = append(ds.X, row)
	}
	return ds
}
