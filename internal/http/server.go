// Package http serves the expense tracker UI: the list/form view, the
// analytics dashboard and the htmx partials that glue them together. All
// data comes from the remote backend through the api client; the only
// state kept here is the coordinator store handed in at construction.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"expenseboard/internal/charts"
	"expenseboard/internal/config"
	"expenseboard/internal/core"
	applog "expenseboard/internal/log"
	"expenseboard/internal/state"
	appweb "expenseboard/web"
)

// Backend is the slice of the api client the server needs.
type Backend interface {
	List(ctx context.Context) ([]core.Expense, error)
	Create(ctx context.Context, payload core.ExpensePayload) (core.Expense, error)
	Update(ctx context.Context, id int64, payload core.ExpensePayload) (core.Expense, error)
	Delete(ctx context.Context, id int64) error
	Overall(ctx context.Context) (core.OverallStats, error)
	Monthly(ctx context.Context) ([]core.MonthBreakdown, error)
}

type Server struct {
	http.Server
	templates *template.Template
	backend   Backend
	store     *state.Store
	renderer  *charts.Renderer
	logger    *applog.Logger

	currencySymbol string
	dateFormat     string

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, cfg *config.Config, backend Backend, store *state.Store, logger *applog.Logger) (*Server, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		backend:        backend,
		store:          store,
		renderer:       charts.NewRenderer(cfg.CurrencySymbol),
		logger:         logger,
		currencySymbol: cfg.CurrencySymbol,
		dateFormat:     cfg.DateFormat,
		rateLimiter:    newRateLimiter(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.withRequestContext(s.handleIndex))
	mux.HandleFunc("GET /ui/expenses", s.withRequestContext(s.handleExpensesView))
	mux.HandleFunc("POST /ui/reload", s.withRequestContext(s.handleReload))
	mux.HandleFunc("GET /ui/dashboard", s.withRequestContext(s.handleDashboard))

	mux.HandleFunc("POST /expenses", s.withRequestContext(s.handleCreate))
	mux.HandleFunc("POST /expenses/cancel", s.withRequestContext(s.handleCancelEdit))
	mux.HandleFunc("POST /expenses/{id}", s.withRequestContext(s.handleUpdate))
	mux.HandleFunc("DELETE /expenses/{id}", s.withRequestContext(s.handleDelete))
	mux.HandleFunc("POST /expenses/{id}/edit", s.withRequestContext(s.handleStartEdit))
	mux.HandleFunc("POST /view/{name}", s.withRequestContext(s.handleViewSwitch))

	return s, nil
}

// withRequestContext adds security headers, rate limiting on mutating
// methods, a request ID and request logging.
func (s *Server) withRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		reqLogger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.IntoContext(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		reqLogger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready only when the backend answers the stats
// endpoint; a dead backend makes every view useless.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if _, err := s.backend.Overall(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("backend unreachable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
