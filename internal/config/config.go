// Package config carries the run options of the harness. Everything that was
// ambient state in ad-hoc experiments — seeds, pool sizes, thresholds — is an
// explicit field here so runs stay reproducible.
package config

import (
	"os"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Config struct {
	CVFolds              int     `yaml:"cv_folds"`
	CVRepeats            int     `yaml:"cv_repeats"`
	CVSeed               int64   `yaml:"cv_seed"`
	PCAVarianceThreshold float64 `yaml:"pca_variance_threshold"`
	CorrelationCutoff    float64 `yaml:"correlation_cutoff"`
	SelectionTolerance   float64 `yaml:"selection_tolerance"`
	SplitSeedTrain       int64   `yaml:"split_seed_train"`
	SplitSeedTest        int64   `yaml:"split_seed_test"`
	Concurrency          int     `yaml:"concurrency"`

	Estimators int `yaml:"estimators"`
	MaxDepth   int `yaml:"max_depth"`
	MinSamples int `yaml:"min_samples"`
}

// Default mirrors the published comparison: 10x3 repeated k-fold, 0.5 PCA
// variance cutoff, 0.6 correlation cutoff, seed pair 3903/5285.
func Default() Config {
	return Config{
		CVFolds:              10,
		CVRepeats:            3,
		CVSeed:               42,
		PCAVarianceThreshold: 0.5,
		CorrelationCutoff:    0.6,
		SelectionTolerance:   0,
		SplitSeedTrain:       3903,
		SplitSeedTest:        5285,
		Concurrency:          runtime.NumCPU(),
		Estimators:           25,
		MaxDepth:             8,
		MinSamples:           20,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.CVFolds < 2 {
		return errors.Errorf("cv_folds must be at least 2, got %d", c.CVFolds)
	}
	if c.CVRepeats < 1 {
		return errors.Errorf("cv_repeats must be at least 1, got %d", c.CVRepeats)
	}
	if c.PCAVarianceThreshold <= 0 || c.PCAVarianceThreshold > 1 {
		return errors.Errorf("pca_variance_threshold must be in (0,1], got %v", c.PCAVarianceThreshold)
	}
	if c.CorrelationCutoff <= 0 || c.CorrelationCutoff > 1 {
		return errors.Errorf("correlation_cutoff must be in (0,1], got %v", c.CorrelationCutoff)
	}
	if c.SelectionTolerance < 0 {
		return errors.Errorf("selection_tolerance must not be negative, got %v", c.SelectionTolerance)
	}
	return nil
}
