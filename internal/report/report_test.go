package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gotest.tools/assert"

	"harbench/internal/evaluation"
	"harbench/internal/features"
	"harbench/internal/pipeline"
	"harbench/internal/split"

	"harbench/internal/data"
)

func sampleResult() *pipeline.Result {
	ok := &evaluation.Candidate{
		Strategy:  "identity",
		Transform: &features.IdentityTransform{Width: 52},
		Fitted:    &evaluation.FittedModel{Elapsed: 2 * time.Second},
		Score: &evaluation.ScoreRecord{
			ErrorRate: 0.125,
			CVError:   0.2,
			Coverage:  []int{0, 1, 2, 3, 4},
			Confusion: [][]int{{2, 1, 0, 0, 0}, {0, 2, 0, 0, 0}, {0, 0, 1, 0, 0}, {0, 0, 0, 1, 0}, {0, 0, 0, 0, 1}},
			TrainTime: 2 * time.Second,
		},
	}
	failed := &evaluation.Candidate{
		Strategy: "pca",
		Err:      errors.Wrap(features.ErrDegenerateInput, "3 rows for 52 columns"),
	}
	return &pipeline.Result{
		Partition: &split.Partition{
			TrainSubjects:      []string{"a", "b", "c", "d"},
			ValidationSubjects: []string{"e"},
			TestSubjects:       []string{"f"},
		},
		Candidates: []*evaluation.Candidate{ok, failed},
		Winner:     ok,
		FinalScore: ok.Score,
	}
}

func TestBuildKeepsExcludedCandidates(t *testing.T) {
	sum := Build(sampleResult())
	assert.Equal(t, len(sum.Rows), 2)
	assert.Equal(t, sum.Rows[0].Status, "ok")
	assert.Equal(t, sum.Rows[1].Status, "excluded")
	assert.Assert(t, strings.Contains(sum.Rows[1].Reason, "degenerate input"))
	assert.Equal(t, sum.Winner, "identity")
	assert.Equal(t, sum.FinalErrorPct, 12.5)
}

func TestWriteCSVStableShape(t *testing.T) {
	sum := Build(sampleResult())
	path := filepath.Join(t.TempDir(), "report.csv")
	assert.NilError(t, sum.WriteCSV(path))

	f, err := os.Open(path)
	assert.NilError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	assert.NilError(t, err)
	// header + two strategies + final line
	assert.Equal(t, len(rows), 4)
	assert.Equal(t, rows[0][0], "strategy")
	assert.Equal(t, rows[1][0], "identity")
	assert.Equal(t, rows[2][1], "excluded")
	assert.Assert(t, strings.HasPrefix(rows[3][0], "final:"))
}

func TestWriteJSONRoundTrips(t *testing.T) {
	sum := Build(sampleResult())
	path := filepath.Join(t.TempDir(), "report.json")
	assert.NilError(t, sum.WriteJSON(path))
	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), "\"winner\": \"identity\""))
}

func TestFormatConfusionLabels(t *testing.T) {
	out := FormatConfusion([][]int{{1, 0}, {0, 2}})
	assert.Assert(t, strings.Contains(out, "pred\\true"))
	assert.Assert(t, strings.Contains(out, data.ClassLabels[0]))
	assert.Assert(t, strings.Contains(out, data.ClassLabels[1]))
}

func TestCheckTotal(t *testing.T) {
	rec := &evaluation.ScoreRecord{Confusion: [][]int{{2, 1}, {0, 3}}}
	assert.Assert(t, CheckTotal(rec, 6))
	assert.Assert(t, !CheckTotal(rec, 7))
}
