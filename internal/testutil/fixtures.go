// Package testutil holds the reference artifacts and helpers shared by the
// package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Reference artifact contents. They mirror the files under models/.
var (
	FeatureNames = []string{
		"Age",
		"Years_Since_Graduation",
		"Education_Level_Bachelor's",
		"Education_Level_Diploma",
		"Education_Level_Master's",
		"Education_Level_PhD",
		"Field_of_Study_Arts",
		"Field_of_Study_Business",
		"Field_of_Study_Engineering",
		"Field_of_Study_Health",
		"Field_of_Study_IT",
		"Field_of_Study_Social Sciences",
		"Language_Proficiency_Advanced",
		"Language_Proficiency_Basic",
		"Language_Proficiency_Fluent",
		"Language_Proficiency_Intermediate",
		"Visa_Type_Permanent Residency",
		"Visa_Type_Post-study",
		"Visa_Type_Student",
		"Visa_Type_Work",
		"University_Ranking_High",
		"University_Ranking_Low",
		"University_Ranking_Medium",
		"Region_of_Study_Australia",
		"Region_of_Study_Canada",
		"Region_of_Study_EU",
		"Region_of_Study_UK",
	}

	CategoricalColumns = []string{
		"Education_Level",
		"Field_of_Study",
		"Language_Proficiency",
		"Visa_Type",
		"University_Ranking",
		"Region_of_Study",
	}

	Intercept = 54000.0

	Coefficients = []float64{
		2100.0, 5200.0, 800.0, -2400.0, 1500.0, 3100.0, -2600.0, 600.0, 2200.0,
		900.0, 2500.0, -1700.0, 700.0, -1900.0, 1400.0, -300.0, 1800.0, -400.0,
		-2200.0, 900.0, 2300.0, -2100.0, -150.0, 350.0, 500.0, -600.0, 250.0,
	}

	Mean = []float64{
		34.5, 7.25, 0.38, 0.12, 0.36, 0.14, 0.11, 0.22, 0.2,
		0.15, 0.21, 0.11, 0.24, 0.16, 0.3, 0.3, 0.18, 0.32,
		0.27, 0.23, 0.25, 0.3, 0.45, 0.24, 0.26, 0.22, 0.28,
	}

	Scale = []float64{
		8.2, 5.5, 0.485386, 0.324962, 0.48, 0.346987, 0.31289, 0.414246, 0.4,
		0.357071, 0.407308, 0.31289, 0.427083, 0.366606, 0.458258, 0.458258, 0.384187, 0.466476,
		0.443959, 0.420833, 0.433013, 0.458258, 0.497494, 0.427083, 0.438634, 0.414246, 0.448999,
	}
)

// Raw model outputs for the reference artifacts, before clamping.
const (
	// Master's, Engineering, Fluent, Post-study, High, UK, 28, 3.
	ReferenceRaw = 61163.490856481665
	// Diploma, Arts, Basic, Student, Low, EU, 18, 0.
	LowProfileRaw = 7211.001460309892
	// PhD, IT, Fluent, Permanent Residency, High, Canada, 65, 40.
	HighProfileRaw = 118193.65235631731
)

// Artifact file names as written by WriteArtifacts.
const (
	ModelFile              = "best_linear_model.json"
	ScalerFile             = "scaler.json"
	FeatureNamesFile       = "feature_names.json"
	CategoricalColumnsFile = "categorical_columns.json"
)

// ArtifactFiles lists the four files in load order.
var ArtifactFiles = []string{ModelFile, ScalerFile, FeatureNamesFile, CategoricalColumnsFile}

// WriteArtifacts writes the reference artifacts into a fresh temp dir and
// returns its path.
func WriteArtifacts(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	WriteArtifactsTo(t, dir)
	return dir
}

// WriteArtifactsTo writes (or restores) the reference artifacts in dir.
func WriteArtifactsTo(t testing.TB, dir string) {
	t.Helper()

	WriteJSON(t, filepath.Join(dir, ModelFile), map[string]interface{}{
		"model_type":   "LinearRegression",
		"coefficients": Coefficients,
		"intercept":    Intercept,
	})
	WriteJSON(t, filepath.Join(dir, ScalerFile), map[string]interface{}{
		"scaler_type": "StandardScaler",
		"mean":        Mean,
		"scale":       Scale,
	})
	WriteJSON(t, filepath.Join(dir, FeatureNamesFile), FeatureNames)
	WriteJSON(t, filepath.Join(dir, CategoricalColumnsFile), CategoricalColumns)
}

// WriteArtifactsWithout writes the reference artifacts minus one feature, with
// its coefficient and scaler entries removed so the set stays consistent.
func WriteArtifactsWithout(t testing.TB, feature string) string {
	t.Helper()

	idx := -1
	var features []string
	for i, f := range FeatureNames {
		if f == feature {
			idx = i
			continue
		}
		features = append(features, f)
	}
	if idx < 0 {
		t.Fatalf("unknown feature %q", feature)
	}

	dir := WriteArtifacts(t)
	WriteJSON(t, filepath.Join(dir, FeatureNamesFile), features)
	WriteJSON(t, filepath.Join(dir, ModelFile), map[string]interface{}{
		"model_type":   "LinearRegression",
		"coefficients": without(Coefficients, idx),
		"intercept":    Intercept,
	})
	WriteJSON(t, filepath.Join(dir, ScalerFile), map[string]interface{}{
		"scaler_type": "StandardScaler",
		"mean":        without(Mean, idx),
		"scale":       without(Scale, idx),
	})
	return dir
}

func without(values []float64, i int) []float64 {
	out := make([]float64, 0, len(values)-1)
	out = append(out, values[:i]...)
	return append(out, values[i+1:]...)
}

// WriteJSON marshals v to path, failing the test on error.
func WriteJSON(t testing.TB, path string, v interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	WriteFile(t, path, data)
}

// WriteFile writes raw bytes to path, failing the test on error.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// RemoveFile deletes path, failing the test on error.
func RemoveFile(t testing.TB, path string) {
	t.Helper()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
}
