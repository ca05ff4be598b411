package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/types"
)

// CohereAdapter talks to the Cohere chat API.
type CohereAdapter struct {
	cfg    config.ProviderConfig
	client *http.Client
}

func NewCohereAdapter(cfg config.ProviderConfig, client *http.Client) *CohereAdapter {
	return &CohereAdapter{cfg: cfg, client: client}
}

func (a *CohereAdapter) Name() string     { return "cohere" }
func (a *CohereAdapter) Configured() bool { return a.cfg.APIKey != "" }

func (a *CohereAdapter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}

	model := req.Model
	if model == "" {
		model = a.cfg.DefaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	body := cohereRequestBody{
		Model:       model,
		Message:     req.Prompt,
		Preamble:    req.System,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal cohere request: %w", err)
	}

	url := a.cfg.BaseURL + "/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	for k, v := range a.cfg.Headers {
		if v != "" {
			httpReq.Header.Set(k, v)
		}
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("cohere request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cohere response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cohere returned status %d: %s", resp.StatusCode, string(raw))
	}

	var cohResp cohereResponseBody
	if err := json.Unmarshal(raw, &cohResp); err != nil {
		return nil, fmt.Errorf("unmarshal cohere response: %w", err)
	}
	if cohResp.Text == "" {
		return nil, fmt.Errorf("cohere returned no text")
	}

	inTokens := cohResp.Meta.Tokens.InputTokens
	outTokens := cohResp.Meta.Tokens.OutputTokens
	return &CompletionResult{
		Text:     cohResp.Text,
		Model:    model,
		Provider: a.Name(),
		Usage: types.Usage{
			PromptTokens:     inTokens,
			CompletionTokens: outTokens,
			TotalTokens:      inTokens + outTokens,
		},
	}, nil
}

type cohereRequestBody struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Preamble    string  `json:"preamble,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type cohereResponseBody struct {
	Text string `json:"text"`
	Meta struct {
		Tokens struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"tokens"`
	} `json:"meta"`
}
