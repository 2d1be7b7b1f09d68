package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PanelMetrics collects HTTP and submission counters for the panel server.
type PanelMetrics struct {
	registry *prometheus.Registry

	requestTotal       *prometheus.CounterVec
	submissionsTotal   *prometheus.CounterVec
	predictDuration    prometheus.Histogram
	predictionInFlight prometheus.Gauge
	scoreDistribution  prometheus.Histogram
}

func NewPanelMetrics() *PanelMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_predictor",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_predictor",
			Subsystem: "panel",
			Name:      "submissions_total",
			Help:      "Submission attempts by outcome.",
		},
		[]string{"outcome"},
	)
	predictDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resume_predictor",
			Subsystem: "predictor",
			Name:      "request_duration_seconds",
			Help:      "Prediction endpoint round trip in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
	predictionInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resume_predictor",
			Subsystem: "predictor",
			Name:      "in_flight_requests",
			Help:      "Prediction requests awaiting a response.",
		},
	)
	scoreDistribution := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resume_predictor",
			Subsystem: "panel",
			Name:      "ats_score",
			Help:      "Distribution of applied ATS scores.",
			Buckets:   []float64{40, 60, 80, 100},
		},
	)

	registry.MustRegister(
		requestTotal,
		submissionsTotal,
		predictDuration,
		predictionInFlight,
		scoreDistribution,
	)

	return &PanelMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		submissionsTotal:   submissionsTotal,
		predictDuration:    predictDuration,
		predictionInFlight: predictionInFlight,
		scoreDistribution:  scoreDistribution,
	}
}

func (m *PanelMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PanelMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by route pattern so file names never become labels.
func (m *PanelMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requestTotal.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Outcome is one of "succeeded", "failed", "rejected" or "discarded".
func (m *PanelMetrics) RecordSubmission(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *PanelMetrics) RecordScore(score int) {
	m.scoreDistribution.Observe(float64(score))
}

// TrackPrediction marks a request in flight and returns the func that closes it.
func (m *PanelMetrics) TrackPrediction() func() {
	start := time.Now()
	m.predictionInFlight.Inc()
	return func() {
		m.predictionInFlight.Dec()
		m.predictDuration.Observe(time.Since(start).Seconds())
	}
}
