// internal/handlers/system/model-info/models.go
package modelinfo

type Output struct {
	BestModelSelected  string                      `json:"best_model_selected"`
	SelectionCriteria  string                      `json:"selection_criteria"`
	PerformanceMetrics PerformanceMetrics          `json:"performance_metrics"`
	ModelComparison    map[string]ComparisonResult `json:"model_comparison"`
	TrainingDetails    TrainingDetails             `json:"training_details"`
	OutputBounds       OutputBounds                `json:"output_bounds"`
	ArtifactsLoaded    bool                        `json:"artifacts_loaded"`
	Fingerprint        string                      `json:"artifact_fingerprint,omitempty"`
}

type PerformanceMetrics struct {
	TestR2            float64 `json:"test_r2"`
	TestMSE           float64 `json:"test_mse"`
	TestRMSE          float64 `json:"test_rmse"`
	VarianceExplained string  `json:"variance_explained"`
}

type ComparisonResult struct {
	TestMSE float64 `json:"test_mse"`
	TestR2  float64 `json:"test_r2"`
}

type TrainingDetails struct {
	TrainingSamples       int      `json:"training_samples"`
	TestSamples           int      `json:"test_samples"`
	FeaturesAfterEncoding int      `json:"features_after_encoding"`
	CategoricalColumns    []string `json:"categorical_columns"`
}

type OutputBounds struct {
	Enabled bool    `json:"enabled"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}
