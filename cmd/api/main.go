package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"harbench/internal/data"
	"harbench/internal/pipeline"
	"harbench/internal/report"
	"harbench/pkg/utils"
)

type predictRequest struct {
	Features [][]float64 `json:"features"`
}

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	addr := flag.String("addr", ":8080", "Listen address")
	reportPath := flag.String("report", "out/report.json", "Run report JSON")
	plotPath := flag.String("plot", "out/error_rates.png", "Error-rate chart PNG")
	modelPath := flag.String("model", "models/winner.gob", "Winning model bundle")
	flag.Parse()

	var sum *report.Summary
	if b, err := os.ReadFile(*reportPath); err == nil {
		sum = &report.Summary{}
		if err := json.Unmarshal(b, sum); err != nil {
			logger.Warn("parse report", zap.Error(err))
			sum = nil
		}
	} else {
		logger.Warn("no report available", zap.Error(err))
	}

	bundle, err := pipeline.LoadBundle(*modelPath)
	if err != nil {
		logger.Warn("no model bundle available", zap.Error(err))
	} else {
		logger.Info("model bundle loaded", zap.String("strategy", bundle.Strategy))
	}

	r := gin.Default()

	r.GET("/api/report", func(c *gin.Context) {
		if sum == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report, run cmd/pipeline first"})
			return
		}
		c.JSON(http.StatusOK, sum)
	})

	r.GET("/api/confusion/:strategy", func(c *gin.Context) {
		if sum == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report"})
			return
		}
		name := c.Param("strategy")
		if name == "final" {
			c.String(http.StatusOK, report.FormatConfusion(sum.FinalConfusion))
			return
		}
		for _, row := range sum.Rows {
			if row.Strategy == name && row.Confusion != nil {
				c.String(http.StatusOK, report.FormatConfusion(row.Confusion))
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown strategy " + name})
	})

	r.POST("/api/predict", func(c *gin.Context) {
		if bundle == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no model loaded"})
			return
		}
		var req predictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, row := range req.Features {
			if len(row) != len(bundle.Columns) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":    "each row needs one value per reduced column",
					"expected": len(bundle.Columns),
				})
				return
			}
		}
		preds, err := bundle.Predict(req.Features)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		labels := make([]string, len(preds))
		for i, p := range preds {
			labels[i] = data.ClassLabels[p]
		}
		c.JSON(http.StatusOK, gin.H{"strategy": bundle.Strategy, "classes": labels})
	})

	r.StaticFile("/error_rates.png", *plotPath)

	logger.Info("api listening", zap.String("addr", *addr))
	if err := r.Run(*addr); err != nil {
		logger.Fatal("api server", zap.Error(err))
	}
}
