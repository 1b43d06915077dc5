package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salary-predictor/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func familyNames(t *testing.T, reg *prometheus.Registry) []string {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}

func hasPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

func TestObservability_RecordsThroughExporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := New("salary-predictor-test", reg, logger.NewNoOpLogger())
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	ctx := context.Background()
	obs.RecordPrediction(ctx, 3*time.Millisecond, "success")
	obs.RecordArtifactLoad(ctx, nil)
	obs.RecordArtifactLoad(ctx, errors.New("boom"))

	names := familyNames(t, reg)
	assert.True(t, hasPrefix(names, "pipeline_predictions"), names)
	assert.True(t, hasPrefix(names, "pipeline_prediction_duration"), names)
	assert.True(t, hasPrefix(names, "pipeline_artifact_loads"), names)
}

func TestObservability_ZeroValueIsNoOp(t *testing.T) {
	obs := &Observability{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordPrediction(ctx, time.Millisecond, "failed")
		obs.RecordArtifactLoad(ctx, nil)
	})
	assert.NoError(t, obs.Shutdown(ctx))
}
