// Package artifacts reads the fitted model, scaler and feature metadata that
// the training process leaves in the artifact directory.
package artifacts

import (
	"fmt"
	"math"
	"time"

	"salary-predictor/internal/pipeline/aligner"
)

// File names inside the artifact directory.
const (
	ModelFile              = "best_linear_model.json"
	ScalerFile             = "scaler.json"
	FeatureNamesFile       = "feature_names.json"
	CategoricalColumnsFile = "categorical_columns.json"
)

// Files lists every required artifact.
var Files = []string{ModelFile, ScalerFile, FeatureNamesFile, CategoricalColumnsFile}

// LinearModel is a fitted ordinary least squares regression.
type LinearModel struct {
	ModelType    string    `json:"model_type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Predict returns intercept + coefficients·x.
func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.Coefficients), len(x))
	}
	var dot float64
	for i, c := range m.Coefficients {
		dot += c * x[i]
	}
	return dot + m.Intercept, nil
}

// StandardScaler is a fitted per-column standardization.
type StandardScaler struct {
	ScalerType string    `json:"scaler_type"`
	Mean       []float64 `json:"mean"`
	Scale      []float64 `json:"scale"`
}

// Transform returns (x - mean) / scale without modifying x.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// Artifacts is one consistent load of the four files. It is never modified
// after the loader publishes it.
type Artifacts struct {
	Model              *LinearModel
	Scaler             *StandardScaler
	FeatureNames       []string
	CategoricalColumns []string

	// Index maps (source column, value) to feature slots.
	Index *aligner.Index
	// Fingerprint is a sha256 over the four files, used in cache keys.
	Fingerprint string
	LoadedAt    time.Time
}

func (a *Artifacts) validate() error {
	n := len(a.FeatureNames)
	if len(a.Model.Coefficients) != n {
		return fmt.Errorf("%s has %d coefficients for %d features", ModelFile, len(a.Model.Coefficients), n)
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("%s has %d means and %d scales for %d features",
			ScalerFile, len(a.Scaler.Mean), len(a.Scaler.Scale), n)
	}
	for i, s := range a.Scaler.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%s scale for %q is %v", ScalerFile, a.FeatureNames[i], s)
		}
	}
	return nil
}
