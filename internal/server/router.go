// Package server assembles the HTTP front end: routing, middleware and the
// listener lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/common/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// UnmatchedRoute labels requests that hit no route, keeping raw paths out of
// metric labels.
const UnmatchedRoute = "unmatched"

// Handlers are the endpoints mounted by NewRouter. Metrics may be nil.
type Handlers struct {
	Service   http.Handler
	Predict   http.Handler
	Health    http.Handler
	ModelInfo http.Handler
	Metrics   http.Handler
}

// NewRouter wires the middleware chain and routes.
func NewRouter(h Handlers, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(log))
	r.Use(recoverer(log))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Method(http.MethodGet, "/", h.Service)
	r.Method(http.MethodPost, "/predict", h.Predict)
	r.Method(http.MethodGet, "/health", h.Health)
	r.Method(http.MethodGet, "/model-info", h.ModelInfo)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"detail": "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, map[string]string{"detail": "Method Not Allowed"})
	})

	return r
}

// requestID keeps a caller supplied X-Request-ID or mints a UUID, stores it
// where middleware.GetReqID finds it and echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessLog(log logger.Logger) func(http.Handler) http.Handler {
	log = log.WithFields(map[string]interface{}{"component": "http"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := UnmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			log.Info("request completed", map[string]interface{}{
				"requestId":  middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"route":      route,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"durationMs": elapsed.Milliseconds(),
				"remoteAddr": r.RemoteAddr,
			})
		})
	}
}

// recoverer turns a handler panic into the JSON error body every other
// failure uses. http.ErrAbortHandler is re-raised as net/http expects.
func recoverer(log logger.Logger) func(http.Handler) http.Handler {
	errs := apperrors.NewErrorHandler(log.WithFields(map[string]interface{}{"component": "recoverer"}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				errs.Respond(w, r, apperrors.NewInternalError(fmt.Errorf("panic: %v", rvr)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
