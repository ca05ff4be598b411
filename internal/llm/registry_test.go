package llm

import (
	"sync"
	"testing"

	"github.com/optiverse/opticore/internal/config"
)

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai"})
	reg.Register("anthropic", &stubAdapter{name: "anthropic"})

	next := NewRegistry()
	next.Register("openai", &stubAdapter{name: "openai", configured: true})
	reg.Replace(next)

	if _, ok := reg.Get("anthropic"); ok {
		t.Error("anthropic should be gone after replace")
	}
	a, ok := reg.Get("openai")
	if !ok {
		t.Fatal("openai missing after replace")
	}
	if !a.Configured() {
		t.Error("replace should have installed the new adapter instance")
	}
	if got := reg.Names(); len(got) != 1 || got[0] != "openai" {
		t.Errorf("Names() = %v, want [openai]", got)
	}
}

// Reload swaps must be safe against request goroutines reading the registry.
func TestRegistryReplace_ConcurrentReaders(t *testing.T) {
	reg := NewRegistry()
	reg.Register("openai", &stubAdapter{name: "openai"})

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				reg.Get("openai")
				reg.Names()
			}
		}()
	}

	for i := 0; i < 100; i++ {
		next := NewRegistry()
		next.Register("openai", &stubAdapter{name: "openai", configured: i%2 == 0})
		reg.Replace(next)
	}
	close(done)
	wg.Wait()

	if _, ok := reg.Get("openai"); !ok {
		t.Error("openai missing after concurrent replaces")
	}
}

func TestBuildFromConfig_GeminiKeyAlias(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-alias-key")

	reg := BuildFromConfig(&config.ProvidersConfig{
		Providers: map[string]config.ProviderConfig{
			"gemini": {Type: "gemini", BaseURL: "https://example.test"},
		},
	})

	a, ok := reg.Get("gemini")
	if !ok {
		t.Fatal("gemini adapter missing")
	}
	if !a.Configured() {
		t.Error("gemini should pick up GOOGLE_API_KEY when api_key is empty")
	}
}

func TestBuildFromConfig_GeminiExplicitKeyWins(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-alias-key")

	reg := BuildFromConfig(&config.ProvidersConfig{
		Providers: map[string]config.ProviderConfig{
			"gemini": {Type: "gemini", APIKey: "explicit", BaseURL: "https://example.test"},
		},
	})

	a, _ := reg.Get("gemini")
	if !a.Configured() {
		t.Fatal("gemini with an explicit key must be configured")
	}
}
