package report

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotErrorRates renders the per-strategy validation error as a bar chart
// PNG. Excluded strategies appear with an empty bar so the chart never hides
// a failed candidate.
func (s *Summary) PlotErrorRates(path string) error {
	p := plot.New()
	p.Title.Text = "Validation error by feature strategy"
	p.Y.Label.Text = "Error %"
	p.Y.Min = 0

	values := make(plotter.Values, len(s.Rows))
	names := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		values[i] = r.ErrorPct
		names[i] = r.Strategy
	}
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
