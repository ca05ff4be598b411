package llm

import (
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/types"
)

// Registry holds the configured provider adapters. It is rebuilt wholesale
// on config reload.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

func (r *Registry) Register(name string, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[name] = adapter
}

// Replace swaps in the adapter set from a freshly built registry. The swap
// happens under the write lock, so readers holding Get/Names never observe
// a half-built map. Used by the config reload hook.
func (r *Registry) Replace(next *Registry) {
	next.mu.RLock()
	adapters := make(map[string]Adapter, len(next.adapters))
	for name, a := range next.adapters {
		adapters[name] = a
	}
	next.mu.RUnlock()

	r.mu.Lock()
	r.adapters = adapters
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns all registered provider names in sorted order so callers
// that iterate (diagnostics) are deterministic.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderForBackend maps the routing enum onto a registry key. The
// classification layer says "claude"; the provider config says "anthropic".
func ProviderForBackend(b types.Backend) string {
	if b == types.BackendClaude {
		return "anthropic"
	}
	return string(b)
}

// BuildFromConfig builds provider adapters from the providers config.
func BuildFromConfig(provCfg *config.ProvidersConfig) *Registry {
	registry := NewRegistry()
	for name, cfg := range provCfg.Providers {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		maxConcurrent := cfg.MaxConcurrent
		if maxConcurrent == 0 {
			maxConcurrent = 10
		}
		client := &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxConcurrent,
				MaxIdleConnsPerHost: maxConcurrent,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		}

		var adapter Adapter
		switch cfg.Type {
		case "anthropic":
			adapter = NewAnthropicAdapter(cfg, client)
		case "gemini":
			if cfg.APIKey == "" {
				// Deployments use either env name for the same credential.
				cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
			}
			adapter = NewGeminiAdapter(cfg, client)
		case "cohere":
			adapter = NewCohereAdapter(cfg, client)
		default:
			// OpenAI-compatible is the baseline for unknown types
			adapter = NewOpenAIAdapter(cfg, client)
		}
		registry.Register(name, adapter)
	}
	return registry
}
