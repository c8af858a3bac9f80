// Package report renders a run into stable, machine-parsable artifacts: a
// CSV table (one row per strategy), a JSON summary for the API, text
// confusion matrices and an error-rate chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"harbench/internal/data"
	"harbench/internal/evaluation"
	"harbench/internal/pipeline"
)

// StrategyRow is one line of the comparison table.
type StrategyRow struct {
	Strategy     string        `json:"strategy"`
	Status       string        `json:"status"`
	Reason       string        `json:"reason,omitempty"`
	Features     int           `json:"features,omitempty"`
	CVErrorPct   float64       `json:"cv_error_pct"`
	ErrorPct     float64       `json:"validation_error_pct"`
	TrainTime    time.Duration `json:"train_time_ns"`
	Coverage     []string      `json:"coverage,omitempty"`
	Degenerate   bool          `json:"degenerate"`
	Confusion    [][]int       `json:"confusion,omitempty"`
}

// Summary is the full run report.
type Summary struct {
	TrainSubjects      []string      `json:"train_subjects"`
	ValidationSubjects []string      `json:"validation_subjects"`
	TestSubjects       []string      `json:"test_subjects"`
	Rows               []StrategyRow `json:"strategies"`
	Winner             string        `json:"winner"`
	FinalErrorPct      float64       `json:"final_test_error_pct"`
	FinalConfusion     [][]int       `json:"final_confusion"`
	TimesContended     bool          `json:"times_contended"`
}

// Build flattens a pipeline result. Excluded candidates stay in the table
// with their reason; they are never silently dropped.
func Build(res *pipeline.Result) *Summary {
	s := &Summary{
		TrainSubjects:      res.Partition.TrainSubjects,
		ValidationSubjects: res.Partition.ValidationSubjects,
		TestSubjects:       res.Partition.TestSubjects,
		Winner:             res.Winner.Strategy,
		FinalErrorPct:      res.FinalScore.ErrorRate * 100,
		FinalConfusion:     res.FinalScore.Confusion,
		TimesContended:     res.TimesContended,
	}
	for _, c := range res.Candidates {
		row := StrategyRow{Strategy: c.Strategy}
		if !c.Viable() {
			row.Status = "excluded"
			if c.Err != nil {
				row.Reason = c.Err.Error()
			}
		} else {
			row.Status = "ok"
			row.Features = c.Transform.Cols()
			row.CVErrorPct = c.Score.CVError * 100
			row.ErrorPct = c.Score.ErrorRate * 100
			row.TrainTime = c.Fitted.Elapsed
			row.Degenerate = c.Score.Degenerate
			row.Confusion = c.Score.Confusion
			for _, cls := range c.Score.Coverage {
				row.Coverage = append(row.Coverage, data.ClassLabels[cls])
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// WriteCSV writes the comparison table: strategy, status, error %, time.
func (s *Summary) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"strategy", "status", "features", "cv_error_pct", "validation_error_pct", "train_time_s", "coverage", "reason"}); err != nil {
		return err
	}
	for _, r := range s.Rows {
		rec := []string{
			r.Strategy,
			r.Status,
			strconv.Itoa(r.Features),
			fmt.Sprintf("%.4f", r.CVErrorPct),
			fmt.Sprintf("%.4f", r.ErrorPct),
			fmt.Sprintf("%.3f", r.TrainTime.Seconds()),
			strings.Join(r.Coverage, "|"),
			r.Reason,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"final:" + s.Winner, "test", "", "", fmt.Sprintf("%.4f", s.FinalErrorPct), "", "", ""}); err != nil {
		return err
	}
	return nil
}

// WriteJSON writes the whole summary for the API to serve.
func (s *Summary) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// FormatConfusion renders a predicted-by-true count table with class labels.
func FormatConfusion(m [][]int) string {
	var b strings.Builder
	b.WriteString("pred\\true")
	for _, l := range data.ClassLabels[:len(m)] {
		fmt.Fprintf(&b, "%8s", l)
	}
	b.WriteByte('\n')
	for i, row := range m {
		fmt.Fprintf(&b, "%9s", data.ClassLabels[i])
		for _, v := range row {
			fmt.Fprintf(&b, "%8d", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CheckTotal verifies a confusion matrix accounts for every scored row.
func CheckTotal(rec *evaluation.ScoreRecord, rows int) bool {
	sum := 0
	for _, r := range rec.Confusion {
		for _, v := range r {
			sum += v
		}
	}
	return sum == rows
}
