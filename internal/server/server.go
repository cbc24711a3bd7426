package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/predictle/predictle/internal/handler"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/metrics"
	"github.com/predictle/predictle/internal/prediction"
	"github.com/predictle/predictle/internal/stats"
	"github.com/predictle/predictle/internal/user"
)

// maxRequestBodySize caps request bodies well above the largest legal
// payload (a create with a full description).
const maxRequestBodySize = 1 << 20 // 1 MB

// Services groups everything the HTTP layer depends on
type Services struct {
	User       user.Service
	Prediction prediction.Service
	Stats      stats.Service
	DB         handler.Pinger
}

// Server wraps the HTTP server
type Server struct {
	httpServer *http.Server
	adminKey   string
}

// NewServer builds the router and returns a server ready to start
func NewServer(port int, adminAPIKey string, svcs Services) *Server {
	s := &Server{adminKey: adminAPIKey}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(securityHeadersMiddleware)
	r.Use(requestSizeLimitMiddleware(maxRequestBodySize))
	r.Use(metrics.Middleware)

	// Operational endpoints sit outside the API version prefix.
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svcs.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/user/login", handler.HandleLogin(svcs.User))
		r.Get("/user/{userID}", handler.HandleGetUser(svcs.User))
		r.Get("/user/{userID}/history", handler.HandleGetUserHistory(svcs.Stats))

		r.Post("/prediction", handler.HandleCreatePrediction(svcs.Prediction))
		r.Get("/prediction/active", handler.HandleListActivePredictions(svcs.Prediction))
		r.Get("/prediction/{predictionID}", handler.HandleGetPrediction(svcs.Prediction))
		r.Get("/prediction/{predictionID}/vote", handler.HandleGetUserVote(svcs.Prediction))
		r.Post("/prediction/vote", handler.HandleCastVote(svcs.Prediction))

		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.Stats))

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminAPIKey))
			r.Post("/prediction/{predictionID}/resolve", handler.HandleResolvePrediction(svcs.Prediction))
			r.Post("/prediction/{predictionID}/cancel", handler.HandleCancelPrediction(svcs.Prediction))
			r.Get("/prediction/{predictionID}/votes", handler.HandleListPredictionVotes(svcs.Prediction))
			r.Post("/sweep", handler.HandleSweepExpired(svcs.Prediction))
		})
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, letting in-flight requests finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestIDMiddleware attaches a request ID to the context and echoes it in
// the response so clients can quote it in bug reports.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each request with its duration and status
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.FromContext(r.Context()).Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten())
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func requestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
