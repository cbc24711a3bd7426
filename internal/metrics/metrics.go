package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values
const (
	ResolveTriggerManual = "manual"
	ResolveTriggerSweep  = "sweep"

	XPReasonParticipation    = "participation"
	XPReasonCorrectnessBonus = "correctness_bonus"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictle_http_requests_total",
			Help: "Total number of HTTP requests processed, by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predictle_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and path",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "predictle_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "predictle_users_registered_total",
			Help: "Total number of users created through login-or-register",
		},
	)

	PredictionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "predictle_predictions_created_total",
			Help: "Total number of predictions created",
		},
	)

	PredictionsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictle_predictions_resolved_total",
			Help: "Total number of predictions resolved, by trigger (manual or sweep)",
		},
		[]string{"trigger"},
	)

	VotesCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictle_votes_cast_total",
			Help: "Total number of votes cast, by choice",
		},
		[]string{"choice"},
	)

	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictle_xp_awarded_total",
			Help: "Total XP granted to users, by reason",
		},
		[]string{"reason"},
	)
)
