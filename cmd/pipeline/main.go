package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"harbench/internal/config"
	"harbench/internal/data"
	"harbench/internal/pipeline"
	"harbench/internal/report"
	"harbench/pkg/utils"
)

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	configPath := flag.String("config", "", "YAML config file (defaults used when empty)")
	source := flag.String("source", "wle-training", "Data source: wle-training|synthetic")
	synthN := flag.Int("n", 6000, "Row count for the synthetic source")
	synthSeed := flag.Int64("synth_seed", 7, "Seed for the synthetic source")
	cacheDir := flag.String("cache", "data/cache", "Download cache directory")
	outDir := flag.String("out", "out", "Report output directory")
	modelPath := flag.String("model_out", "models/winner.gob", "Winning model bundle path")
	seedTrain := flag.Int64("seed_train", 0, "Override train/rest split seed")
	seedTest := flag.Int64("seed_test", 0, "Override validation/test split seed")
	concurrency := flag.Int("concurrency", 0, "Override worker pool size (1 = serial, comparable times)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
		cfg = c
	}
	if *seedTrain != 0 {
		cfg.SplitSeedTrain = *seedTrain
	}
	if *seedTest != 0 {
		cfg.SplitSeedTest = *seedTest
	}
	if *concurrency != 0 {
		cfg.Concurrency = *concurrency
	}

	var ds *data.Dataset
	switch *source {
	case "synthetic":
		ds = data.GenerateSynthetic(*synthN, *synthSeed)
		logger.Info("synthetic dataset generated", zap.Int("rows", ds.Len()))
	default:
		loader := data.NewLoader(*cacheDir)
		frame, err := loader.Load(*source)
		if err != nil {
			logger.Fatal("load dataset", zap.String("source", *source), zap.Error(err))
		}
		ds, err = data.Reduce(frame)
		if err != nil {
			logger.Fatal("reduce dataset", zap.Error(err))
		}
		logger.Info("dataset reduced",
			zap.Int("rows", ds.Len()),
			zap.Int("columns", len(ds.Columns)),
			zap.Strings("subjects", ds.SubjectSet()))
	}

	res, err := pipeline.Run(cfg, ds, logger)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	sum := report.Build(res)
	if err := sum.WriteCSV(*outDir + "/report.csv"); err != nil {
		logger.Fatal("write report csv", zap.Error(err))
	}
	if err := sum.WriteJSON(*outDir + "/report.json"); err != nil {
		logger.Fatal("write report json", zap.Error(err))
	}
	if err := sum.PlotErrorRates(*outDir + "/error_rates.png"); err != nil {
		logger.Warn("plot error rates", zap.Error(err))
	}
	if err := pipeline.SaveBundle(*modelPath, ds.Columns, res.Winner); err != nil {
		logger.Fatal("save winner bundle", zap.Error(err))
	}
	logger.Info("run complete",
		zap.String("winner", res.Winner.Strategy),
		zap.Float64("final_test_error_pct", sum.FinalErrorPct),
		zap.String("report", *outDir+"/report.csv"),
		zap.String("model", *modelPath))

	fmt.Println("Winner:", res.Winner.Strategy)
	fmt.Printf("Final test error: %.2f%%\n", sum.FinalErrorPct)
	fmt.Println(report.FormatConfusion(res.FinalScore.Confusion))
	if sum.TimesContended {
		fmt.Fprintln(os.Stderr, "note: concurrency > 1, training times are contended; rerun with -concurrency 1 to compare times")
	}
}
