package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/types"
)

// ErrAllProvidersFailed means every backend in the fallback chain was
// exhausted. Callers decide whether a static heuristic can still answer.
var ErrAllProvidersFailed = errors.New("all providers failed")

// Chain resolves a preferred backend into an ordered provider list and
// walks it until one call succeeds. There is no retry against the same
// provider: a failure moves straight to the next backend (fail fast).
type Chain struct {
	registry *Registry
	health   *HealthTracker
	fallback string
	metrics  *telemetry.Metrics
}

func NewChain(registry *Registry, health *HealthTracker, fallbackProvider string, metrics *telemetry.Metrics) *Chain {
	if fallbackProvider == "" {
		fallbackProvider = "openai"
	}
	return &Chain{
		registry: registry,
		health:   health,
		fallback: fallbackProvider,
		metrics:  metrics,
	}
}

// Order returns the provider sequence for a preferred backend: the
// preference first, then the configured fallback, deduplicated.
func (c *Chain) Order(preferred types.Backend) []string {
	primary := ProviderForBackend(preferred)
	if primary == "" || primary == c.fallback {
		return []string{c.fallback}
	}
	return []string{primary, c.fallback}
}

// Complete walks the chain for the preferred backend. Tripped breakers are
// skipped without a network call; unconfigured providers likewise.
func (c *Chain) Complete(ctx context.Context, preferred types.Backend, req CompletionRequest) (*CompletionResult, error) {
	var lastErr error
	attempted := false
	prev := ""

	for _, name := range c.Order(preferred) {
		adapter, ok := c.registry.Get(name)
		if !ok {
			lastErr = fmt.Errorf("unknown provider %q", name)
			continue
		}
		if !adapter.Configured() {
			lastErr = fmt.Errorf("provider %q: %w", name, ErrNotConfigured)
			continue
		}
		if c.health != nil && !c.health.IsAvailable(name) {
			slog.Debug("skipping provider with open breaker", "provider", name)
			lastErr = fmt.Errorf("provider %q circuit open", name)
			continue
		}

		if prev != "" && c.metrics != nil {
			c.metrics.RecordFallback(prev, name)
		}

		attempted = true
		start := time.Now()
		result, err := adapter.Complete(ctx, req)
		durationMs := float64(time.Since(start).Milliseconds())

		if err != nil {
			slog.Warn("provider call failed",
				"provider", name,
				"duration_ms", durationMs,
				"error", err,
			)
			if c.health != nil {
				c.health.RecordFailure(name)
			}
			if c.metrics != nil {
				c.metrics.RecordProviderCall(name, "error", durationMs)
			}
			lastErr = err
			prev = name
			continue
		}

		if c.health != nil {
			c.health.RecordSuccess(name)
		}
		if c.metrics != nil {
			c.metrics.RecordProviderCall(name, "ok", durationMs)
		}
		return result, nil
	}

	if lastErr != nil {
		if !attempted {
			// Nothing was even called; keep the skip reason inspectable so
			// callers can tell "every provider is down" from "nothing is
			// configured".
			return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
	}
	return nil, ErrAllProvidersFailed
}
