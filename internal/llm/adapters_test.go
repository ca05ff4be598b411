package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/optiverse/opticore/internal/config"
)

func TestOpenAIAdapter_Complete(t *testing.T) {
	var gotBody openAIRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "hello"}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15},
		})
	}))
	defer srv.Close()

	a := NewOpenAIAdapter(config.ProviderConfig{
		BaseURL: srv.URL, APIKey: "test-key", DefaultModel: "gpt-4o",
	}, srv.Client())

	result, err := a.Complete(context.Background(), CompletionRequest{
		System: "be brief", Prompt: "say hello", Temperature: 0.7, MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "hello" {
		t.Errorf("expected text 'hello', got %q", result.Text)
	}
	if result.Usage.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", result.Usage.TotalTokens)
	}
	if gotBody.Temperature != 0.7 || gotBody.MaxTokens != 256 {
		t.Errorf("temperature/max_tokens not forwarded: %+v", gotBody)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("expected system+user messages, got %+v", gotBody.Messages)
	}
}

func TestOpenAIAdapter_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewOpenAIAdapter(config.ProviderConfig{BaseURL: srv.URL, APIKey: "k"}, srv.Client())
	_, err := a.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestOpenAIAdapter_Unconfigured(t *testing.T) {
	a := NewOpenAIAdapter(config.ProviderConfig{BaseURL: "http://unused"}, http.DefaultClient)
	_, err := a.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAnthropicAdapter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "ant-key" {
			t.Errorf("unexpected api key header %q", key)
		}
		var body anthropicRequestBody
		json.NewDecoder(r.Body).Decode(&body)
		if body.MaxTokens == 0 {
			t.Error("anthropic requests must always carry max_tokens")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model":       "claude-sonnet",
			"content":     []map[string]string{{"type": "text", "text": "bonjour"}},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 10, "output_tokens": 2},
		})
	}))
	defer srv.Close()

	a := NewAnthropicAdapter(config.ProviderConfig{
		BaseURL: srv.URL, APIKey: "ant-key", DefaultModel: "claude-sonnet",
	}, srv.Client())

	result, err := a.Complete(context.Background(), CompletionRequest{Prompt: "salut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "bonjour" {
		t.Errorf("expected 'bonjour', got %q", result.Text)
	}
	if result.Usage.TotalTokens != 12 {
		t.Errorf("expected total 12 tokens, got %d", result.Usage.TotalTokens)
	}
}

func TestGeminiAdapter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": "hej"}}}},
			},
			"usageMetadata": map[string]int{"promptTokenCount": 5, "candidatesTokenCount": 1, "totalTokenCount": 6},
		})
	}))
	defer srv.Close()

	a := NewGeminiAdapter(config.ProviderConfig{
		BaseURL: srv.URL, APIKey: "gem-key", DefaultModel: "gemini-flash",
	}, srv.Client())

	result, err := a.Complete(context.Background(), CompletionRequest{Prompt: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "hej" {
		t.Errorf("expected 'hej', got %q", result.Text)
	}
}

func TestCohereAdapter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"text": "hola",
			"meta": map[string]any{"tokens": map[string]int{"input_tokens": 4, "output_tokens": 1}},
		})
	}))
	defer srv.Close()

	a := NewCohereAdapter(config.ProviderConfig{
		BaseURL: srv.URL, APIKey: "co-key", DefaultModel: "command-r",
	}, srv.Client())

	result, err := a.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "hola" {
		t.Errorf("expected 'hola', got %q", result.Text)
	}
	if result.Usage.TotalTokens != 5 {
		t.Errorf("expected 5 total tokens, got %d", result.Usage.TotalTokens)
	}
}

func TestBuildFromConfig_TypeDispatch(t *testing.T) {
	reg := BuildFromConfig(&config.ProvidersConfig{
		Providers: map[string]config.ProviderConfig{
			"openai":    {Type: "openai", Timeout: time.Second},
			"anthropic": {Type: "anthropic"},
			"gemini":    {Type: "gemini"},
			"cohere":    {Type: "cohere"},
			"local":     {Type: "llamacpp"}, // unknown: openai-compatible
		},
	})

	for _, name := range []string{"openai", "anthropic", "gemini", "cohere", "local"} {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("provider %q not registered", name)
		}
	}
	if a, _ := reg.Get("local"); a.Name() != "openai" {
		t.Errorf("unknown type should build an openai-compatible adapter, got %s", a.Name())
	}
}
