package data

import (
	stderrors "errors"
	"strconv"
	"testing"

	"gotest.tools/assert"
)

func frameWith(cols []string, rows int) *Frame {
	header := append([]string{SubjectColumn, LabelColumn, "raw_timestamp_part_1"}, cols...)
	f := &Frame{Header: header}
	for i := 0; i < rows; i++ {
		rec := []string{"jeremy", ClassLabels[i%NumClasses], "1323084231"}
		for j := range cols {
			rec = append(rec, strconv.Itoa(i+j))
		}
		f.Records = append(f.Records, rec)
	}
	return f
}

func TestReduceSelectsSensorColumns(t *testing.T) {
	f := frameWith(SensorColumns(), 10)
	ds, err := Reduce(f)
	assert.NilError(t, err)
	assert.Equal(t, ds.Len(), 10)
	assert.Equal(t, len(ds.Columns), 52)
	assert.Equal(t, len(ds.X[0]), 52)
	assert.Equal(t, ds.Subjects[0], "jeremy")
	assert.Equal(t, ds.Labels[0], 0)
}

func TestReduceSchemaMismatch(t *testing.T) {
	cols := SensorColumns()
	f := frameWith(cols[:len(cols)-1], 3) // one sensor column missing
	_, err := Reduce(f)
	assert.Assert(t, stderrors.Is(err, ErrSchemaMismatch))

	noSubject := frameWith(cols, 3)
	noSubject.Header[0] = "somebody_else"
	_, err = Reduce(noSubject)
	assert.Assert(t, stderrors.Is(err, ErrSchemaMismatch))
}

func TestReduceDropsUnparsableRows(t *testing.T) {
	f := frameWith(SensorColumns(), 5)
	f.Records[2][3] = "NA"
	ds, err := Reduce(f)
	assert.NilError(t, err)
	assert.Equal(t, ds.Len(), 4)
}

func TestReduceDropsUnknownClass(t *testing.T) {
	f := frameWith(SensorColumns(), 5)
	f.Records[0][1] = "F"
	ds, err := Reduce(f)
	assert.NilError(t, err)
	assert.Equal(t, ds.Len(), 4)
}

func TestSensorColumnCount(t *testing.T) {
	cols := SensorColumns()
	assert.Equal(t, len(cols), 52)
	seen := map[string]bool{}
	for _, c := range cols {
		assert.Assert(t, !seen[c], "duplicate column %s", c)
		seen[c] = true
	}
}

func TestGenerateSyntheticShape(t *testing.T) {
	ds := GenerateSynthetic(120, 9)
	assert.Equal(t, ds.Len(), 120)
	assert.Equal(t, len(ds.SubjectSet()), 6)
	perClass := map[int]int{}
	for _, l := range ds.Labels {
		perClass[l]++
	}
	assert.Equal(t, len(perClass), NumClasses)

	again := GenerateSynthetic(120, 9)
	assert.Equal(t, again.X[5][7], ds.X[5][7])
}
