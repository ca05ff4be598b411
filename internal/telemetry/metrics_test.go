package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// testMetrics builds a Metrics instance on a fresh registry so tests do not
// pollute the default registerer.
func testMetrics(t *testing.T) *Metrics {
	t.Helper()
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_opticore_request_total", Help: "t",
		}, []string{"module", "status"}),
		ClassificationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_opticore_classification_total", Help: "t",
		}, []string{"intent", "source"}),
		ProviderDurationMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "test_opticore_provider_request_duration_ms", Help: "t",
			Buckets: []float64{100, 1000},
		}, []string{"provider", "outcome"}),
		ProviderFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_opticore_provider_fallback_total", Help: "t",
		}, []string{"from", "to"}),
		PipelineDurationMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "test_opticore_suggestion_pipeline_duration_ms", Help: "t",
			Buckets: []float64{10, 100},
		}, []string{}),
		CandidateTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_opticore_suggestion_candidate_total", Help: "t",
		}, []string{"source"}),
		RateLimitHitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_opticore_rate_limit_hit_total", Help: "t",
		}, []string{"class"}),
	}
	reg.MustRegister(
		m.RequestTotal, m.ClassificationTotal, m.ProviderDurationMs,
		m.ProviderFallbackTotal, m.PipelineDurationMs, m.CandidateTotal,
		m.RateLimitHitTotal,
	)
	return m
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return *metric.Counter.Value
}

func TestRecordClassification(t *testing.T) {
	m := testMetrics(t)
	m.RecordClassification("reply", "fallback")
	m.RecordClassification("reply", "fallback")
	m.RecordClassification("schedule", "remote")

	c, err := m.ClassificationTotal.GetMetricWithLabelValues("reply", "fallback")
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if got := counterValue(t, c); got != 2 {
		t.Errorf("expected 2 fallback reply classifications, got %v", got)
	}
}

func TestRecordFallback(t *testing.T) {
	m := testMetrics(t)
	m.RecordFallback("claude", "openai")

	c, _ := m.ProviderFallbackTotal.GetMetricWithLabelValues("claude", "openai")
	if got := counterValue(t, c); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
}

func TestRecordPipeline_CountsPerSource(t *testing.T) {
	m := testMetrics(t)
	m.RecordPipeline(42, map[string]int{"intent": 3, "emotional": 0, "cross_module": 1})

	c, _ := m.CandidateTotal.GetMetricWithLabelValues("intent")
	if got := counterValue(t, c); got != 3 {
		t.Errorf("expected 3 intent candidates, got %v", got)
	}
	// Zero-count sources are not recorded
	c, _ = m.CandidateTotal.GetMetricWithLabelValues("emotional")
	if got := counterValue(t, c); got != 0 {
		t.Errorf("expected 0 emotional candidates, got %v", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	m := testMetrics(t)
	m.RecordRateLimitHit("ai")
	m.RecordRateLimitHit("ai")

	c, _ := m.RateLimitHitTotal.GetMetricWithLabelValues("ai")
	if got := counterValue(t, c); got != 2 {
		t.Errorf("expected 2 hits, got %v", got)
	}
}
