package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProber_NotConfiguredIsNeverError(t *testing.T) {
	reg := NewRegistry()
	reg.Register("gemini", &stubAdapter{name: "gemini", configured: false})
	reg.Register("openai", &stubAdapter{name: "openai", configured: true, text: "pong"})

	report := NewProber(reg, time.Second).Run(context.Background())

	for _, r := range report.Results {
		if r.Service == "gemini" && r.Status != DiagNotConfigured {
			t.Errorf("unconfigured provider status = %s, want not_configured", r.Status)
		}
	}
}

func TestProber_AllHealthy(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai", configured: true, text: "pong"})
	reg.Register("anthropic", &stubAdapter{name: "anthropic", configured: true, text: "pong"})

	report := NewProber(reg, time.Second).Run(context.Background())
	if report.Overall != "healthy" {
		t.Errorf("expected healthy, got %s", report.Overall)
	}
}

func TestProber_SomeErrored(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai", configured: true, text: "pong"})
	reg.Register("cohere", &stubAdapter{name: "cohere", configured: true, err: errors.New("timeout")})

	report := NewProber(reg, time.Second).Run(context.Background())
	if report.Overall != "degraded" {
		t.Errorf("expected degraded, got %s", report.Overall)
	}
}

func TestProber_AllConfiguredFailing(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai", configured: true, err: errors.New("down")})
	reg.Register("gemini", &stubAdapter{name: "gemini", configured: false})

	report := NewProber(reg, time.Second).Run(context.Background())
	if report.Overall != "unhealthy" {
		t.Errorf("expected unhealthy, got %s", report.Overall)
	}
}

func TestProber_NothingConfigured(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai", configured: false})

	report := NewProber(reg, time.Second).Run(context.Background())
	if report.Overall != "degraded" {
		t.Errorf("expected degraded with nothing configured, got %s", report.Overall)
	}
	if report.Results[0].Status != DiagNotConfigured {
		t.Errorf("expected not_configured, got %s", report.Results[0].Status)
	}
}

func TestProber_ResultsAreSortedByService(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai", configured: true, text: "pong"})
	reg.Register("anthropic", &stubAdapter{name: "anthropic", configured: true, text: "pong"})
	reg.Register("cohere", &stubAdapter{name: "cohere", configured: true, text: "pong"})

	report := NewProber(reg, time.Second).Run(context.Background())
	want := []string{"anthropic", "cohere", "openai"}
	for i, r := range report.Results {
		if r.Service != want[i] {
			t.Errorf("result[%d].Service = %s, want %s", i, r.Service, want[i])
		}
	}
}
