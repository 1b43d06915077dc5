// internal/handlers/system/model-info/handler.go
package modelinfo

import (
	"context"
	"net/http"

	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/internal/pipeline/scorer"
	"salary-predictor/pkg/modelcard"

	"github.com/go-chi/render"
)

const Name = "model-info"

// Provider is satisfied by *pipeline.Predictor.
type Provider interface {
	Artifacts(ctx context.Context) (*artifacts.Artifacts, error)
	ClampPolicy() scorer.ClampPolicy
}

type Handler struct {
	provider Provider
	card     *modelcard.ModelCard
	logger   logger.Logger
}

func NewHandler(provider Provider, card *modelcard.ModelCard, log logger.Logger) *Handler {
	return &Handler{
		provider: provider,
		card:     card,
		logger:   log.WithFields(map[string]interface{}{"handler": Name}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.Execute(r.Context()))
}

// Execute describes the model. The card figures are always reported; the
// encoding details are filled in only when the artifacts are loaded.
func (h *Handler) Execute(ctx context.Context) *Output {
	policy := h.provider.ClampPolicy()

	out := &Output{
		BestModelSelected: h.card.BestModel,
		SelectionCriteria: h.card.SelectionCriteria,
		PerformanceMetrics: PerformanceMetrics{
			TestR2:            h.card.Metrics.TestR2,
			TestMSE:           h.card.Metrics.TestMSE,
			TestRMSE:          h.card.Metrics.TestRMSE,
			VarianceExplained: h.card.VarianceExplained(),
		},
		ModelComparison: make(map[string]ComparisonResult, len(h.card.Comparison)),
		TrainingDetails: TrainingDetails{
			TrainingSamples:    h.card.Training.TrainingSamples,
			TestSamples:        h.card.Training.TestSamples,
			CategoricalColumns: []string{},
		},
		OutputBounds: OutputBounds{
			Enabled: policy.Enabled,
			Min:     policy.Min,
			Max:     policy.Max,
		},
	}

	for _, c := range h.card.Comparison {
		out.ModelComparison[c.Key] = ComparisonResult{TestMSE: c.TestMSE, TestR2: c.TestR2}
	}

	a, err := h.provider.Artifacts(ctx)
	if err != nil {
		h.logger.Debug("Model info without artifacts", map[string]interface{}{
			"error": err,
		})
		return out
	}

	out.ArtifactsLoaded = true
	out.Fingerprint = a.Fingerprint
	out.TrainingDetails.FeaturesAfterEncoding = len(a.FeatureNames)
	out.TrainingDetails.CategoricalColumns = append([]string{}, a.CategoricalColumns...)
	return out
}
