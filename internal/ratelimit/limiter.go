package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter enforces a sliding-window request limit per key. A nil store
// disables limiting entirely; store errors fail open so a Redis outage
// never takes request handling down with it.
type Limiter struct {
	store Store
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Check admits or rejects one request under the given limit and window.
// On rejection, RetryAfter is the time until the oldest in-window entry
// expires, which is when one slot frees up.
func (l *Limiter) Check(ctx context.Context, key string, limit int64, window time.Duration) Result {
	now := time.Now()

	if l.store == nil {
		return Result{Allowed: true, Remaining: limit - 1, ResetAt: now.Add(window)}
	}

	hit, err := l.store.Hit(ctx, key, limit, window)
	if err != nil {
		slog.Warn("rate limit store unavailable, failing open", "error", err)
		return Result{Allowed: true, Remaining: limit, ResetAt: now.Add(window)}
	}

	remaining := limit - hit.Count
	if remaining < 0 {
		remaining = 0
	}

	resetAt := now.Add(window)
	if !hit.Oldest.IsZero() {
		resetAt = hit.Oldest.Add(window)
	}

	var retryAfter time.Duration
	if !hit.Allowed {
		retryAfter = time.Until(resetAt)
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return Result{
		Allowed:    hit.Allowed,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}
