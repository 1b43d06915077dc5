// internal/handlers/system/health-check/handler.go
package healthcheck

import (
	"context"
	"net/http"

	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/pkg/modelcard"

	"github.com/go-chi/render"
)

const Name = "health-check"

// ArtifactProvider is satisfied by *pipeline.Predictor.
type ArtifactProvider interface {
	Artifacts(ctx context.Context) (*artifacts.Artifacts, error)
}

// Pinger is satisfied by *database.RedisClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	config   *Config
	provider ArtifactProvider
	card     *modelcard.ModelCard
	cache    Pinger
	logger   logger.Logger
}

// NewHandler builds the handler. cache may be nil when no prediction cache
// is configured.
func NewHandler(config *Config, provider ArtifactProvider, card *modelcard.ModelCard, cache Pinger, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		provider: provider,
		card:     card,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"handler": Name}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output := h.Execute(ctx)

	status := http.StatusOK
	if output.Status != StatusHealthy && h.config.FailStatus {
		status = http.StatusServiceUnavailable
	}
	render.Status(r, status)
	render.JSON(w, r, output)
}

// Execute reports whether the artifacts are loaded. A failed load is
// permanent for the process, so an unhealthy report stays unhealthy until
// restart.
func (h *Handler) Execute(ctx context.Context) *Output {
	out := &Output{
		Status:    StatusHealthy,
		BestModel: h.card.BestModel,
		Performance: Performance{
			TestR2:   h.card.Metrics.TestR2,
			TestMSE:  h.card.Metrics.TestMSE,
			TestRMSE: h.card.Metrics.TestRMSE,
		},
	}

	a, err := h.provider.Artifacts(ctx)
	if err != nil {
		h.logger.Warn("Health check: model not loaded", map[string]interface{}{
			"error": err,
		})
		out.Status = StatusUnhealthy
		out.Error = err.Error()
	} else {
		out.ModelLoaded = true
		out.FeaturesUsed = len(a.FeatureNames)
	}

	if h.cache != nil {
		out.Cache = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			h.logger.Warn("Health check: prediction cache unreachable", map[string]interface{}{
				"error": err,
			})
			out.Cache = "unavailable"
		}
	}

	return out
}
