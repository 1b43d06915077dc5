// internal/handlers/system/health-check/models.go
package healthcheck

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type Output struct {
	Status       string      `json:"status"`
	ModelLoaded  bool        `json:"model_loaded"`
	BestModel    string      `json:"best_model"`
	Performance  Performance `json:"performance"`
	FeaturesUsed int         `json:"features_used"`
	Cache        string      `json:"cache,omitempty"`
	Error        string      `json:"error,omitempty"`
}

type Performance struct {
	TestR2   float64 `json:"test_r2"`
	TestMSE  float64 `json:"test_mse"`
	TestRMSE float64 `json:"test_rmse"`
}
