package models

// PredictionOutput is the response body of POST /predict.
type PredictionOutput struct {
	PredictedSalary  float64 `json:"predicted_salary"`
	EducationLevel   string  `json:"education_level"`
	FieldOfStudy     string  `json:"field_of_study"`
	Confidence       string  `json:"confidence"`
	ModelUsed        string  `json:"model_used"`
	ModelPerformance string  `json:"model_performance"`
}

// ConfidenceHigh is the fixed confidence label reported with every prediction.
const ConfidenceHigh = "High"

// CachedScore is what the prediction cache stores: the unclamped model
// output. The clamp is applied after a cache hit so policy changes never
// serve stale values.
type CachedScore struct {
	Raw       float64 `json:"raw"`
	ModelType string  `json:"model_type"`
}
