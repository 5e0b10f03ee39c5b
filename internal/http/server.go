// Package http exposes the reporting engine as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"finlens/internal/core"
	"finlens/internal/log"
)

// Reporter is the service surface the API needs. It is satisfied by
// services.ReportService.
type Reporter interface {
	HomePage(ctx context.Context, ref time.Time) (core.HomePage, error)
	EventSummary(ctx context.Context, ref time.Time, period core.Period) (core.PeriodSummary, error)
	Spending(ctx context.Context, category string, asOf time.Time, windowDays int) (core.SpendingReport, error)
	Cashback(ctx context.Context, year int, month time.Month) (core.CashbackReport, error)
	PersonalTransfers(ctx context.Context) ([]core.Transaction, error)
}

type Server struct {
	http.Server
	reporter    Reporter
	rateLimiter *rateLimiter
	log         *log.Logger

	// now is swapped in tests to pin the reference instant.
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, reporter Reporter, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		reporter:    reporter,
		rateLimiter: newRateLimiter(),
		log:         logger.WithComponent(log.ComponentHTTP),
		now:         time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /api/home", s.withMiddleware(s.handleHomePage))
	mux.HandleFunc("GET /api/events", s.withMiddleware(s.handleEvents))
	mux.HandleFunc("GET /api/reports/spending", s.withMiddleware(s.handleSpending))
	mux.HandleFunc("GET /api/reports/cashback", s.withMiddleware(s.handleCashback))
	mux.HandleFunc("GET /api/transfers/personal", s.withMiddleware(s.handlePersonalTransfers))

	return s
}

// Shutdown stops the rate limiter cleanup goroutine and then the HTTP
// server. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withMiddleware adds a request ID, structured request logging, rate
// limiting and response headers around a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		r = r.WithContext(log.WithRequestID(r.Context(), requestID))

		if !s.rateLimiter.allow(clientIP) {
			s.log.Warn("rate limit exceeded",
				log.FieldRequestID, requestID,
				"client_ip", clientIP,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.log.Info("request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(b)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
