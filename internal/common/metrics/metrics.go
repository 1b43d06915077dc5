// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for PredictionsTotal and PredictionDuration.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeRejected    = "rejected"
	OutcomeFailed      = "failed"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_predictions_total",
			Help: "Total number of predictions by outcome",
		},
		[]string{"outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salary_prediction_duration_seconds",
			Help:    "Duration of a prediction through the pipeline in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"outcome"},
	)

	PredictionsClamped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_predictions_clamped_total",
			Help: "Predictions truncated to the plausibility range, by bound",
		},
		[]string{"bound"},
	)

	UnknownCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_unknown_categories_total",
			Help: "Categorical values with no indicator column in the model features",
		},
		[]string{"field"},
	)

	ArtifactsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salary_artifacts_loaded",
			Help: "1 when the model artifacts are loaded, 0 otherwise",
		},
	)

	ArtifactLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_artifact_load_failures_total",
			Help: "Failed artifact loads by error code",
		},
		[]string{"error_code"},
	)

	PredictionCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_prediction_cache_requests_total",
			Help: "Prediction cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "salary_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)
