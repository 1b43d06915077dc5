package observability

import (
	"context"
	"time"

	"salary-predictor/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	predictionCounter  otelmetric.Int64Counter
	predictionDuration otelmetric.Float64Histogram
	artifactLoads      otelmetric.Int64Counter
}

// New wires an OpenTelemetry meter provider to a Prometheus exporter that
// registers on reg. If the exporter cannot be built the returned value is a
// no-op recorder.
func New(serviceName string, reg promclient.Registerer, log logger.Logger) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Warn("Failed to create Prometheus exporter", map[string]interface{}{
			"error": err,
		})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	predictionCounter, _ := meter.Int64Counter(
		"pipeline.predictions",
		otelmetric.WithDescription("Number of predictions processed"),
	)

	predictionDuration, _ := meter.Float64Histogram(
		"pipeline.prediction.duration",
		otelmetric.WithDescription("Prediction processing duration"),
		otelmetric.WithUnit("ms"),
	)

	artifactLoads, _ := meter.Int64Counter(
		"pipeline.artifact.loads",
		otelmetric.WithDescription("Artifact load attempts"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		predictionCounter:  predictionCounter,
		predictionDuration: predictionDuration,
		artifactLoads:      artifactLoads,
	}
}

func (o *Observability) RecordPrediction(ctx context.Context, duration time.Duration, outcome string) {
	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	if o.predictionCounter != nil {
		o.predictionCounter.Add(ctx, 1, attrs)
	}
	if o.predictionDuration != nil {
		o.predictionDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) RecordArtifactLoad(ctx context.Context, err error) {
	if o.artifactLoads == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	o.artifactLoads.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
