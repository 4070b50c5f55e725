package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	maxBody         = 4 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Logger *log.Logger
}

// Server serves the preview API.
type Server struct {
	logger   *log.Logger
	validate *validator.Validate
	router   chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		logger:   logger,
		validate: validator.New(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(logging(s.logger))

	r.With(jsonContent).Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContent)
		r.Post("/layout", s.layout)
		r.Post("/fit", s.fit)
		r.Post("/spy", s.spy)
		r.Route("/batch", func(r chi.Router) {
			r.Post("/summary", s.batchSummary)
			r.Post("/updates", s.batchUpdates)
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
