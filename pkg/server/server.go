// Package server exposes a finder as a JSON HTTP API.
//
// Routes:
//
//	GET /healthz
//	GET /v1/{provider}/collections?keyword=&category=
//	GET /v1/{provider}/collection/{prefix}?keyword=&page=&per_page=&tags=&prefixes=&suffixes=
//	GET /v1/{provider}/icon/{prefix}/{name}?rotate=&flip=&color=&width=&height=
//	GET /v1/{provider}/search?keyword=&limit=&page=&per_page=&collections=
//
// Errors are JSON objects carrying the error code; the status follows
// [errors.HTTPStatus], so a missing set is a 404 and a broken one a 503.
// Every response has an X-Request-ID header.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/iconfinder/pkg/finder"
)

const shutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *log.Logger
	// Provider and Preload name icon sets loaded before serving.
	Provider string
	Preload  []string
}

// Server serves the API.
type Server struct {
	finder *finder.Finder
	logger *log.Logger
	opts   Options
	http   *http.Server
}

// New creates a server for f.
func New(f *finder.Finder, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	s := &Server{finder: f, logger: opts.Logger, opts: opts}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", s.health)
	r.Route("/v1/{provider}", func(r chi.Router) {
		r.Get("/collections", s.collections)
		r.Get("/collection/{prefix}", s.collection)
		r.Get("/icon/{prefix}/{name}", s.icon)
		r.Get("/search", s.search)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r))
	})
	return r
}

// ListenAndServe preloads the configured sets and serves until ctx ends,
// then shuts down gracefully. Preload failures are logged, not fatal.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if len(s.opts.Preload) > 0 {
		start := time.Now()
		if err := s.finder.Preload(ctx, s.opts.Provider, s.opts.Preload...); err != nil {
			s.logger.Warn("preload incomplete", "err", err)
		}
		s.logger.Info("preloaded icon sets", "count", len(s.opts.Preload), "duration", time.Since(start))
	}

	serveErr := make(chan error, 1)
	s.logger.Info("listening", "addr", ln.Addr().String())
	go func() {
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-serveErr:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
