// internal/handlers/system/service-info/handler.go
package serviceinfo

import (
	"net/http"

	"salary-predictor/pkg/modelcard"

	"github.com/go-chi/render"
)

const (
	Name    = "service-info"
	Message = "International Graduates Salary Prediction API"
)

type Output struct {
	Message     string            `json:"message"`
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	BestModel   string            `json:"best_model"`
	Performance string            `json:"performance"`
	Endpoints   map[string]string `json:"endpoints"`
}

type Handler struct {
	version string
	card    *modelcard.ModelCard
}

func NewHandler(version string, card *modelcard.ModelCard) *Handler {
	return &Handler{version: version, card: card}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.Execute())
}

func (h *Handler) Execute() *Output {
	return &Output{
		Message:     Message,
		Status:      "active",
		Version:     h.version,
		BestModel:   h.card.BestModel,
		Performance: h.card.TestPerformanceSummary(),
		Endpoints: map[string]string{
			"health":     "/health",
			"predict":    "/predict",
			"model_info": "/model-info",
			"metrics":    "/metrics",
		},
	}
}
