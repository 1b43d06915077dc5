package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"salary-predictor/internal/common/config"
	"salary-predictor/internal/common/logger"
)

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          logger.Logger
}

func New(cfg config.ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
			ReadHeaderTimeout: config.GetDuration(cfg.ReadTimeout),
			WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
		},
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
		logger:          log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", map[string]interface{}{
			"addr": ln.Addr().String(),
		})
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", map[string]interface{}{
		"timeout": s.shutdownTimeout.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// ListenAndServe binds the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
