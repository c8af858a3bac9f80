package data

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// SubjectColumn names the participant performing the lift.
	SubjectColumn = "user_name"
	// LabelColumn names the execution-quality class.
	LabelColumn = "classe"
)

var sensorSites = []string{"belt", "arm", "dumbbell", "forearm"}

// SensorColumns lists the 52 retained predictors: per sensor site the
// roll/pitch/yaw angles, the total acceleration, and the three-axis gyroscope,
// accelerometer and magnetometer readings. These are the instantaneous
// physical measurements of the source schema; the per-window summary columns
// (avg_*, stddev_*, kurtosis_*, ...) are mostly missing and never selected.
func SensorColumns() []string {
	out := make([]string, 0, 52)
	for _, site := range sensorSites {
		out = append(out,
			"roll_"+site, "pitch_"+site, "yaw_"+site, "total_accel_"+site)
		for _, instr := range []string{"gyros", "accel", "magnet"} {
			for _, axis := range []string{"x", "y", "z"} {
				out = append(out, fmt.Sprintf("%s_%s_%s", instr, site, axis))
			}
		}
	}
	return out
}

// Reduce projects a raw frame down to subject, class and the fixed sensor
// columns, parsing the sensor cells as float64. Rows with an unknown class
// label or an unparsable sensor cell are dropped. Pure transform: the input
// frame is not modified.
func Reduce(f *Frame) (*Dataset, error) {
	cols := SensorColumns()
	idx := make([]int, len(cols))
	for i, c := range cols {
		j := f.ColumnIndex(c)
		if j < 0 {
			return nil, errors.Wrapf(ErrSchemaMismatch, "missing column %q", c)
		}
		idx[i] = j
	}
	subjIdx := f.ColumnIndex(SubjectColumn)
	if subjIdx < 0 {
		return nil, errors.Wrapf(ErrSchemaMismatch, "missing column %q", SubjectColumn)
	}
	labelIdx := f.ColumnIndex(LabelColumn)
	if labelIdx < 0 {
		return nil, errors.Wrapf(ErrSchemaMismatch, "missing column %q", LabelColumn)
	}

	ds := &Dataset{Columns: cols}
	for _, rec := range f.Records {
		cls := ClassIndex(rec[labelIdx])
		if cls < 0 {
			continue
		}
		row := make([]float64, len(idx))
		ok := true
		for i, j := range idx {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}
		ds.Subjects = append(ds.Subjects, rec[subjIdx])
		ds.Labels = append(ds.Labels, cls)
		ds.X = append(ds.X, row)
	}
	return ds, nil
}
