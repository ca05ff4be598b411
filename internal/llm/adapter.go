package llm

import (
	"context"
	"errors"

	"github.com/optiverse/opticore/internal/types"
)

// CompletionRequest is a single-turn prompt for any provider. One attempt
// per call: adapters never retry, callers fall back to a different backend.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type CompletionResult struct {
	Text     string
	Model    string
	Provider string
	Usage    types.Usage
}

// Adapter wraps one provider's HTTP API behind a uniform completion call.
type Adapter interface {
	Name() string
	// Configured reports whether the provider has an API key. Unconfigured
	// adapters fail fast and show up as not_configured in diagnostics.
	Configured() bool
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

// ErrNotConfigured is returned by adapters missing an API key.
var ErrNotConfigured = errors.New("provider not configured")

const defaultMaxTokens = 1024
