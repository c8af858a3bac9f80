// Re-renders the comparison chart from a finished run's report.json, for
// tweaking plot output without re-training anything.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"harbench/internal/report"
)

func main() {
	reportPath := flag.String("report", "out/report.json", "Run report JSON")
	outImg := flag.String("out_img", "out/error_rates.png", "PNG output path")
	flag.Parse()

	b, err := os.ReadFile(*reportPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read report:", err)
		os.Exit(1)
	}
	sum := &report.Summary{}
	if err := json.Unmarshal(b, sum); err != nil {
		fmt.Fprintln(os.Stderr, "parse report:", err)
		os.Exit(1)
	}

	for _, row := range sum.Rows {
		if row.Status != "ok" {
			fmt.Printf("%-12s excluded: %s\n", row.Strategy, row.Reason)
			continue
		}
		fmt.Printf("%-12s err=%.2f%% cv=%.2f%% time=%.2fs features=%d\n",
			row.Strategy, row.ErrorPct, row.CVErrorPct, row.TrainTime.Seconds(), row.Features)
	}
	fmt.Printf("winner: %s, final test error %.2f%%\n", sum.Winner, sum.FinalErrorPct)

	if err := sum.PlotErrorRates(*outImg); err != nil {
		fmt.Fprintln(os.Stderr, "plot:", err)
		os.Exit(1)
	}
	fmt.Println("chart written to", *outImg)
}
