package llm

import (
	"testing"
	"time"
)

func TestBreaker_StartsClosedAndAllows(t *testing.T) {
	b := NewBreaker(3, 5*time.Second)
	if b.State() != BreakerClosed {
		t.Errorf("expected closed, got %s", b.State())
	}
	if !b.Allow() {
		t.Error("expected Allow=true for closed breaker")
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker(3, 5*time.Second)

	b.RecordFailure()
	b.RecordFailure()
	if b.State() != BreakerClosed {
		t.Error("expected closed after 2 failures")
	}

	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Errorf("expected open after 3 failures, got %s", b.State())
	}
	if b.Allow() {
		t.Error("expected Allow=false for open breaker")
	}
}

func TestBreaker_SuccessResetsConsecutiveCount(t *testing.T) {
	b := NewBreaker(3, 5*time.Second)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()

	if b.State() != BreakerClosed {
		t.Errorf("expected closed (failures not consecutive), got %s", b.State())
	}
}

func TestBreaker_HalfOpenAfterProbeInterval(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Fatal("expected open")
	}

	time.Sleep(15 * time.Millisecond)

	if b.State() != BreakerHalfOpen {
		t.Errorf("expected half_open after probe interval, got %s", b.State())
	}
	if !b.Allow() {
		t.Error("expected Allow=true for half-open breaker (probe)")
	}
}

func TestBreaker_ProbeSuccessCloses(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	b.RecordFailure()
	time.Sleep(15 * time.Millisecond)
	b.Allow()
	b.RecordSuccess()

	if b.State() != BreakerClosed {
		t.Errorf("expected closed after successful probe, got %s", b.State())
	}
}

func TestBreaker_ProbeFailureReopens(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	b.RecordFailure()
	time.Sleep(15 * time.Millisecond)
	b.Allow()
	b.RecordFailure()

	if b.State() != BreakerOpen {
		t.Errorf("expected open after failed probe, got %s", b.State())
	}
}

func TestBreakerState_String(t *testing.T) {
	tests := []struct {
		state BreakerState
		want  string
	}{
		{BreakerClosed, "closed"},
		{BreakerOpen, "open"},
		{BreakerHalfOpen, "half_open"},
		{BreakerState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestHealthTracker_PerProviderIsolation(t *testing.T) {
	ht := NewHealthTracker(1, time.Minute)

	ht.RecordFailure("cohere")
	if ht.IsAvailable("cohere") {
		t.Error("expected cohere unavailable after breaker trip")
	}
	if !ht.IsAvailable("openai") {
		t.Error("expected openai unaffected")
	}
}
