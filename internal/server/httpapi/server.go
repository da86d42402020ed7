package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkhristov/userhub/internal/logging"
)

// Server runs the HTTP API until its context is cancelled, then shuts
// down gracefully.
type Server struct {
	address string
	api     *API
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, api *API) *Server {
	return &Server{
		address: address,
		api:     api,
		logger:  l.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.api.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
