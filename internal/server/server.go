// Package server exposes the validator, engine and highlighter as an HTTP
// JSON API. Each browser session gets its own engine.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/internal/watch"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

// Config holds configuration for the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// SessionSecret signs the session cookie. A random key is used when empty,
	// so sessions do not survive a restart.
	SessionSecret string
	// WatchDir, when set, is watched for .sql changes which are validated
	// and logged.
	WatchDir string
	// SecureCookies marks the session cookie Secure. Leave it off when
	// serving plain HTTP or browsers will not send the cookie back.
	SecureCookies bool
	// SessionTTL evicts sessions idle for longer than this. Defaults to the
	// cookie lifetime.
	SessionTTL time.Duration
	// Store records statement history (optional).
	Store state.Store
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	addr         string
	watchDir     string
	sessionStore *sessions.CookieStore
	sessions     *registry
	sessionTTL   time.Duration
	logger       *slog.Logger
}

// New creates a new API server instance.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(sessionMaxAge)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.SecureCookies
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = sessionMaxAge * time.Second
	}

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &Server{
		addr:         addr,
		watchDir:     cfg.WatchDir,
		sessionStore: sessionStore,
		sessions:     newRegistry(cfg.Store, logger),
		sessionTTL:   ttl,
		logger:       logger,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/highlight", s.handleHighlight)
		r.Post("/suggest", s.handleSuggest)
		r.Get("/grammar", s.handleGrammar)
		r.Get("/rules", s.handleRules)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession)
			r.Post("/execute", s.handleExecute)
			r.Post("/plan", s.handlePlan)
			r.Get("/tables", s.handleTables)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
			r.Post("/reset", s.handleReset)
		})
	})
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchDir != "" {
		eg.Go(func() error {
			return watch.Watch(egctx, watch.Config{Path: s.watchDir, Logger: s.logger}, s.validateFile)
		})
	}

	eg.Go(func() error {
		s.sweepSessions(egctx)
		return nil
	})

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// sweepSessions evicts idle sessions until ctx is done.
func (s *Server) sweepSessions(ctx context.Context) {
	interval := s.sessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.evictIdle(now.Add(-s.sessionTTL)); n > 0 {
				s.logger.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

// validateFile validates a changed SQL file and logs the outcome.
func (s *Server) validateFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("failed to read changed file", "file", path, "error", err)
		return
	}
	res := lint.Validate(string(data))
	if res.Valid {
		s.logger.Info("file validated", "file", path, "warnings", len(res.Warnings))
		return
	}
	s.logger.Warn("file has errors", "file", path, "errors", res.Errors)
}

// requestLogger logs each request with slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
