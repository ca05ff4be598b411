package llm

import (
	"sync"
	"time"
)

// BreakerState is the state of a per-provider circuit breaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // healthy, requests flow
	BreakerOpen                         // tripped, requests skipped
	BreakerHalfOpen                     // probing, one request allowed
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Breaker trips after a run of consecutive failures and recovers through a
// single probe request once the probe interval has elapsed. A tripped
// provider is skipped in the fallback chain before any network call.
type Breaker struct {
	mu sync.Mutex

	state       BreakerState
	consecutive int
	openedAt    time.Time

	threshold     int
	probeInterval time.Duration
}

func NewBreaker(threshold int, probeInterval time.Duration) *Breaker {
	return &Breaker{
		state:         BreakerClosed,
		threshold:     threshold,
		probeInterval: probeInterval,
	}
}

// state transition OPEN -> HALF_OPEN happens lazily when observed.
// Must be called with mu held.
func (b *Breaker) observe() BreakerState {
	if b.state == BreakerOpen && time.Since(b.openedAt) >= b.probeInterval {
		b.state = BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.observe()
}

// Allow reports whether a request may go to the provider. Half-open allows
// the probe through.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.observe() != BreakerOpen
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutive = 0
	if b.state == BreakerHalfOpen {
		b.state = BreakerClosed
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutive++
	switch b.observe() {
	case BreakerClosed:
		if b.consecutive >= b.threshold {
			b.state = BreakerOpen
			b.openedAt = time.Now()
		}
	case BreakerHalfOpen:
		// probe failed, reopen
		b.state = BreakerOpen
		b.openedAt = time.Now()
	}
}

// HealthTracker holds one breaker per provider, created lazily.
type HealthTracker struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker

	threshold     int
	probeInterval time.Duration
}

func NewHealthTracker(threshold int, probeInterval time.Duration) *HealthTracker {
	return &HealthTracker{
		breakers:      make(map[string]*Breaker),
		threshold:     threshold,
		probeInterval: probeInterval,
	}
}

func (ht *HealthTracker) breaker(provider string) *Breaker {
	ht.mu.RLock()
	b, ok := ht.breakers[provider]
	ht.mu.RUnlock()
	if ok {
		return b
	}

	ht.mu.Lock()
	defer ht.mu.Unlock()
	if b, ok := ht.breakers[provider]; ok {
		return b
	}
	b = NewBreaker(ht.threshold, ht.probeInterval)
	ht.breakers[provider] = b
	return b
}

func (ht *HealthTracker) IsAvailable(provider string) bool {
	return ht.breaker(provider).Allow()
}

func (ht *HealthTracker) RecordSuccess(provider string) {
	ht.breaker(provider).RecordSuccess()
}

func (ht *HealthTracker) RecordFailure(provider string) {
	ht.breaker(provider).RecordFailure()
}
