package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NilError(t, cfg.Validate())
	assert.Equal(t, cfg.CVFolds, 10)
	assert.Equal(t, cfg.CVRepeats, 3)
	assert.Equal(t, cfg.PCAVarianceThreshold, 0.5)
	assert.Equal(t, cfg.CorrelationCutoff, 0.6)
	assert.Equal(t, cfg.SplitSeedTrain, int64(3903))
	assert.Equal(t, cfg.SplitSeedTest, int64(5285))
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "cv_folds: 5\nsplit_seed_train: 17\ncorrelation_cutoff: 0.75\n"
	assert.NilError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.CVFolds, 5)
	assert.Equal(t, cfg.SplitSeedTrain, int64(17))
	assert.Equal(t, cfg.CorrelationCutoff, 0.75)
	// untouched fields keep their defaults
	assert.Equal(t, cfg.CVRepeats, 3)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("cv_folds: 1\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "cv_folds")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read config")
}
