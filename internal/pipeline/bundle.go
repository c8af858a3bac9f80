package pipeline

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"harbench/internal/evaluation"
	"harbench/internal/features"
	"harbench/internal/models"
	"harbench/internal/preprocessing"
)

// Bundle is the persisted form of a winning candidate: enough to map a raw
// reduced feature vector to a class without refitting anything.
type Bundle struct {
	Strategy  string
	Columns   []string
	Transform features.Transform
	Scaler    *preprocessing.Scaler
	Model     models.Model
}

func init() {
	gob.Register(&models.DecisionTree{})
	gob.Register(&models.Bagging{})
	gob.Register(&models.RandomForest{})
}

// SaveBundle writes the winner to path with gob.
func SaveBundle(path string, columns []string, winner *evaluation.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	b := &Bundle{
		Strategy:  winner.Strategy,
		Columns:   columns,
		Transform: winner.Transform,
		Scaler:    winner.Fitted.Scaler,
		Model:     winner.Fitted.Model,
	}
	return gob.NewEncoder(f).Encode(b)
}

// LoadBundle reads a saved winner.
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b := &Bundle{}
	if err := gob.NewDecoder(f).Decode(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Predict maps reduced feature rows to class indices.
func (b *Bundle) Predict(X [][]float64) ([]int, error) {
	scaled, err := b.Scaler.Transform(b.Transform.Apply(X))
	if err != nil {
		return nil, err
	}
	return b.Model.Predict(scaled), nil
}
