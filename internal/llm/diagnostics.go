package llm

import (
	"context"
	"fmt"
	"time"
)

// DiagnosticStatus is the per-provider outcome of a health probe.
type DiagnosticStatus string

const (
	DiagHealthy       DiagnosticStatus = "healthy"
	DiagError         DiagnosticStatus = "error"
	DiagNotConfigured DiagnosticStatus = "not_configured"
)

type DiagnosticResult struct {
	Service   string           `json:"service"`
	Status    DiagnosticStatus `json:"status"`
	LatencyMs int64            `json:"latencyMs,omitempty"`
	Detail    string           `json:"detail,omitempty"`
}

type DiagnosticsReport struct {
	Overall string             `json:"overall"` // healthy | degraded | unhealthy
	Results []DiagnosticResult `json:"results"`
	Summary string             `json:"summary"`
}

// Prober checks each registered provider with a trivial prompt. A missing
// API key is reported as not_configured, never as an error.
type Prober struct {
	registry *Registry
	timeout  time.Duration
}

func NewProber(registry *Registry, timeout time.Duration) *Prober {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Prober{registry: registry, timeout: timeout}
}

func (p *Prober) Run(ctx context.Context) DiagnosticsReport {
	var results []DiagnosticResult
	healthy, errored, configured := 0, 0, 0

	for _, name := range p.registry.Names() {
		adapter, _ := p.registry.Get(name)

		if !adapter.Configured() {
			results = append(results, DiagnosticResult{
				Service: name,
				Status:  DiagNotConfigured,
			})
			continue
		}
		configured++

		probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		start := time.Now()
		_, err := adapter.Complete(probeCtx, CompletionRequest{
			Prompt:      "ping",
			Temperature: 0,
			MaxTokens:   5,
		})
		cancel()
		latency := time.Since(start).Milliseconds()

		if err != nil {
			errored++
			results = append(results, DiagnosticResult{
				Service:   name,
				Status:    DiagError,
				LatencyMs: latency,
				Detail:    err.Error(),
			})
			continue
		}
		healthy++
		results = append(results, DiagnosticResult{
			Service:   name,
			Status:    DiagHealthy,
			LatencyMs: latency,
		})
	}

	overall := "degraded"
	switch {
	case configured > 0 && errored == 0:
		overall = "healthy"
	case configured > 0 && healthy == 0:
		overall = "unhealthy"
	}

	return DiagnosticsReport{
		Overall: overall,
		Results: results,
		Summary: fmt.Sprintf("%d healthy, %d errored, %d not configured",
			healthy, errored, len(results)-configured),
	}
}
