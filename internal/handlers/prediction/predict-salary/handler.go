// internal/handlers/prediction/predict-salary/handler.go
package predictsalary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline"
	"salary-predictor/pkg/modelcard"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const Name = "predict-salary"

// Predictor is satisfied by *pipeline.Predictor.
type Predictor interface {
	Predict(ctx context.Context, rec models.Record) (*pipeline.Prediction, error)
}

type Handler struct {
	config    *Config
	predictor Predictor
	card      *modelcard.ModelCard
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, predictor Predictor, card *modelcard.ModelCard, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": Name})
	return &Handler{
		config:    config,
		predictor: predictor,
		card:      card,
		errors:    apperrors.NewErrorHandler(log),
		logger:    log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errors.Respond(w, r, apperrors.NewRequestTooLargeError(
				fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		h.errors.Respond(w, r, apperrors.NewMalformedRequestError(err))
		return
	}

	input, err := ValidatePayload(body)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	h.logger.Info("Prediction served", map[string]interface{}{
		"requestId":       middleware.GetReqID(r.Context()),
		"educationLevel":  output.EducationLevel,
		"fieldOfStudy":    output.FieldOfStudy,
		"predictedSalary": output.PredictedSalary,
	})

	render.Status(r, http.StatusOK)
	render.JSON(w, r, output)
}

// Execute scores an already validated input.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	pred, err := h.predictor.Predict(ctx, *input)
	if err != nil {
		return nil, err
	}

	if len(pred.Unknown) > 0 {
		h.logger.Warn("Prediction made with unseen categories", map[string]interface{}{
			"unknown": pred.Unknown,
		})
	}

	return &Output{
		PredictedSalary:  roundCents(pred.Value),
		EducationLevel:   input.EducationLevel,
		FieldOfStudy:     input.FieldOfStudy,
		Confidence:       models.ConfidenceHigh,
		ModelUsed:        h.card.DisplayName,
		ModelPerformance: h.card.PerformanceSummary(),
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
