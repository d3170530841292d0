package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwiatrak/bookmeta/internal/config"
	"github.com/mwiatrak/bookmeta/internal/metrics"
	"github.com/mwiatrak/bookmeta/internal/scraper"
)

// minTitleLength is enforced before the lookup pipeline is invoked.
const minTitleLength = 2

// Server wires HTTP handlers to the book lookup service.
type Server struct {
	router chi.Router
	books  scraper.Service
	logger *zap.Logger
}

// defaultRequestTimeout applies when the config leaves the timeout unset.
const defaultRequestTimeout = 30 * time.Second

// NewServer constructs a Server with middleware and routes.
func NewServer(books scraper.Service, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	requestTimeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	s := &Server{
		books:  books,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/book", s.getBook)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// The service holds no downstream connections to check.
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// getBook resolves a title query to a book page and scrapes its metadata.
func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if utf8.RuneCountInString(strings.TrimSpace(title)) < minTitleLength {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("title is required and must be at least %d characters", minTitleLength))
		return
	}

	s.logger.Info("book lookup requested", zap.String("title", title))

	bookURL, ok := s.books.ResolveBookURL(r.Context(), title)
	if !ok {
		s.logger.Warn("book not found", zap.String("title", title))
		s.writeError(w, http.StatusNotFound,
			fmt.Sprintf("book with title '%s' not found on lubimyczytac.pl", title))
		return
	}

	s.logger.Info("book page resolved",
		zap.String("title", title),
		zap.String("url", bookURL),
	)

	book, err := s.books.ScrapeBook(r.Context(), bookURL)
	if err != nil {
		var upstream *scraper.UpstreamError
		if errors.As(err, &upstream) {
			s.logger.Error("upstream fetch failed",
				zap.String("url", bookURL),
				zap.Int("status", upstream.StatusCode),
				zap.Error(err),
			)
			s.writeError(w, http.StatusBadGateway, "external service error (lubimyczytac.pl)")
			return
		}
		s.logger.Error("book scrape failed",
			zap.String("url", bookURL),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, "internal error while scraping book page")
		return
	}

	book.Query = title
	s.writeJSON(w, http.StatusOK, book)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
