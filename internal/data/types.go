package data

import "github.com/pkg/errors"

// ErrSchemaMismatch reports a raw frame missing one of the documented columns.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ClassLabels is the fixed outcome alphabet. "A" is the correct execution of
// the lift, "B".."E" are the four distinct execution mistakes. The ordering is
// shared by every confusion matrix produced in a run.
var ClassLabels = []string{"A", "B", "C", "D", "E"}

// NumClasses is len(ClassLabels), kept as a named constant because scoring
// code sizes matrices by it.
const NumClasses = 5

// ClassIndex maps a label to its position in ClassLabels, -1 if unknown.
func ClassIndex(label string) int {
	for i, l := range ClassLabels {
		if l == label {
			return i
		}
	}
	return -1
}

// Dataset is the reduced, model-ready table: one subject and one class per
// row, plus a fixed-width numeric feature vector. All rows share Columns.
type Dataset struct {
	Columns  []string
	Subjects []string
	Labels   []int
	X        [][]float64
}

// Len returns the row count.
func (d *Dataset) Len() int { return len(d.X) }

// SubjectSet returns the distinct subjects in row order of first appearance.
func (d *Dataset) SubjectSet() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, s := range d.Subjects {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// FilterSubjects returns a new Dataset holding exactly the rows whose subject
// is in keep. Column layout is shared, row slices are not copied.
func (d *Dataset) FilterSubjects(keep []string) *Dataset {
	set := make(map[string]bool, len(keep))
	for _, s := range keep {
		set[s] = true
	}
	out := &Dataset{Columns: d.Columns}
	for i := range d.X {
		if set[d.Subjects[i]] {
			out.Subjects = append(out.Subjects, d.Subjects[i])
			out.Labels = append(out.Labels, d.Labels[i])
			out.X = append(out.X, d.X[i])
		}
	}
	return out
}

// Frame is a raw tabular dataset straight from the loader: string cells under
// named columns, before any reduction or parsing.
type Frame struct {
	Header  []string
	Records [][]string
}

// ColumnIndex returns the position of name in the header, -1 if absent.
func (f *Frame) ColumnIndex(name string) int {
	for i, h := range f.Header {
		if h == name {
			return i
		}
	}
	return -1
}
