package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/llm"
	"github.com/optiverse/opticore/internal/types"
)

const classifierSystemPrompt = `You classify the user's request into exactly one intent category.
Respond with a single JSON object and nothing else:
{"intent": "<follow_up|thank_you|apology|summarize|reply|rewrite|schedule|other>",
 "confidence": <0.0-1.0>,
 "suggestedLLM": "<openai|claude|gemini|cohere>",
 "context": {"urgency": "<low|normal|high>", "complexity": "<simple|moderate|complex>",
             "emotionalTone": "<free text>", "needsRealTimeInfo": <bool>}}`

// RemoteClassifier asks a single configured provider to classify the input.
// It deliberately does not walk the fallback chain: any failure here, from
// transport errors to malformed JSON, surfaces as an error so the caller
// can switch to the deterministic rules immediately.
type RemoteClassifier struct {
	registry *llm.Registry
	routing  func() config.RoutingConfig
}

func NewRemoteClassifier(registry *llm.Registry, routing func() config.RoutingConfig) *RemoteClassifier {
	return &RemoteClassifier{registry: registry, routing: routing}
}

func (r *RemoteClassifier) Name() string { return string(types.SourceRemote) }

func (r *RemoteClassifier) Classify(ctx context.Context, text string) (types.IntentClassification, error) {
	rc := r.routing()

	adapter, ok := r.registry.Get(rc.ClassifierProvider)
	if !ok {
		return types.IntentClassification{}, fmt.Errorf("classifier provider %q not registered", rc.ClassifierProvider)
	}
	if !adapter.Configured() {
		return types.IntentClassification{}, llm.ErrNotConfigured
	}

	result, err := adapter.Complete(ctx, llm.CompletionRequest{
		Model:       rc.ClassifierModel,
		System:      classifierSystemPrompt,
		Prompt:      text,
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil {
		return types.IntentClassification{}, fmt.Errorf("remote classification: %w", err)
	}

	return parseClassification(result.Text)
}

// parseClassification extracts the JSON object from the model output,
// validates it against the classification schema and maps it onto the
// typed result. Models occasionally wrap the object in prose or fences,
// so we cut to the outermost braces first.
func parseClassification(raw string) (types.IntentClassification, error) {
	doc, err := extractJSONObject(raw)
	if err != nil {
		return types.IntentClassification{}, err
	}
	if err := validateClassification(doc); err != nil {
		return types.IntentClassification{}, err
	}

	parsed := gjson.Parse(doc)

	category, ok := types.ParseIntent(parsed.Get("intent").String())
	if !ok {
		return types.IntentClassification{}, fmt.Errorf("unknown intent %q", parsed.Get("intent").String())
	}

	cls := types.IntentClassification{
		Intent:           category,
		Confidence:       clamp01(parsed.Get("confidence").Float()),
		SuggestedBackend: types.BackendOpenAI,
		Source:           types.SourceRemote,
	}
	if backend, ok := types.ParseBackend(parsed.Get("suggestedLLM").String()); ok {
		cls.SuggestedBackend = backend
	}

	cls.Context = types.IntentContext{
		Urgency:       types.UrgencyNormal,
		Complexity:    types.ComplexitySimple,
		EmotionalTone: "neutral",
	}
	if c := parsed.Get("context"); c.Exists() {
		switch types.Urgency(c.Get("urgency").String()) {
		case types.UrgencyLow, types.UrgencyNormal, types.UrgencyHigh:
			cls.Context.Urgency = types.Urgency(c.Get("urgency").String())
		}
		switch types.Complexity(c.Get("complexity").String()) {
		case types.ComplexitySimple, types.ComplexityModerate, types.ComplexityComplex:
			cls.Context.Complexity = types.Complexity(c.Get("complexity").String())
		}
		if v := c.Get("emotionalTone"); v.Exists() {
			cls.Context.EmotionalTone = v.String()
		}
		cls.Context.NeedsRealTimeInfo = c.Get("needsRealTimeInfo").Bool()
	}

	return cls, nil
}

func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in classifier output")
	}
	doc := raw[start : end+1]
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("classifier output is not valid JSON")
	}
	return doc, nil
}
