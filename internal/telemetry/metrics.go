package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the opticore pipeline.
type Metrics struct {
	RequestTotal          *prometheus.CounterVec
	ClassificationTotal   *prometheus.CounterVec
	ProviderDurationMs    *prometheus.HistogramVec
	ProviderFallbackTotal *prometheus.CounterVec
	PipelineDurationMs    *prometheus.HistogramVec
	CandidateTotal        *prometheus.CounterVec
	RateLimitHitTotal     *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opticore_request_total",
			Help: "Total number of HTTP requests processed, by module and status.",
		}, []string{"module", "status"}),

		ClassificationTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opticore_classification_total",
			Help: "Intent classifications produced, by intent and strategy source.",
		}, []string{"intent", "source"}),

		ProviderDurationMs: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "opticore_provider_request_duration_ms",
			Help:    "LLM provider call duration in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000, 30000},
		}, []string{"provider", "outcome"}),

		ProviderFallbackTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opticore_provider_fallback_total",
			Help: "Fallbacks from one backend to the next in the chain.",
		}, []string{"from", "to"}),

		PipelineDurationMs: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "opticore_suggestion_pipeline_duration_ms",
			Help:    "End-to-end suggestion pipeline duration in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{}),

		CandidateTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opticore_suggestion_candidate_total",
			Help: "Suggestion candidates produced, by contributing source.",
		}, []string{"source"}),

		RateLimitHitTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opticore_rate_limit_hit_total",
			Help: "Requests rejected by the rate limiter, by endpoint class.",
		}, []string{"class"}),
	}
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(module, status string) {
	m.RequestTotal.WithLabelValues(module, status).Inc()
}

// RecordClassification records an intent classification and its source.
func (m *Metrics) RecordClassification(intent, source string) {
	m.ClassificationTotal.WithLabelValues(intent, source).Inc()
}

// RecordProviderCall records one LLM provider call.
func (m *Metrics) RecordProviderCall(provider, outcome string, durationMs float64) {
	m.ProviderDurationMs.WithLabelValues(provider, outcome).Observe(durationMs)
}

// RecordFallback records a fallback hop in the provider chain.
func (m *Metrics) RecordFallback(from, to string) {
	m.ProviderFallbackTotal.WithLabelValues(from, to).Inc()
}

// RecordPipeline records one suggestion pipeline run.
func (m *Metrics) RecordPipeline(durationMs float64, perSource map[string]int) {
	m.PipelineDurationMs.WithLabelValues().Observe(durationMs)
	for source, n := range perSource {
		if n > 0 {
			m.CandidateTotal.WithLabelValues(source).Add(float64(n))
		}
	}
}

// RecordRateLimitHit records a rate-limited request.
func (m *Metrics) RecordRateLimitHit(class string) {
	m.RateLimitHitTotal.WithLabelValues(class).Inc()
}
