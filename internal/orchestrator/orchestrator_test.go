package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/emotion"
	"github.com/optiverse/opticore/internal/intent"
	"github.com/optiverse/opticore/internal/llm"
	"github.com/optiverse/opticore/internal/tiering"
	"github.com/optiverse/opticore/internal/types"
)

type fakeAdapter struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeAdapter) Name() string     { return f.name }
func (f *fakeAdapter) Configured() bool { return true }

func (f *fakeAdapter) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResult{
		Text:     f.text,
		Provider: f.name,
		Model:    "fake-model",
		Usage:    types.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func testOrchestrator(t *testing.T, adapters ...*fakeAdapter) (*Orchestrator, *emotion.FeedbackLog) {
	t.Helper()
	cfg := config.DefaultConfig()

	reg := llm.NewRegistry()
	for _, a := range adapters {
		reg.Register(a.name, a)
	}
	chain := llm.NewChain(reg, nil, cfg.Routing.FallbackProvider, nil)

	tiers := tiering.NewEvaluator(func() config.TieringConfig { return cfg.Tiering })
	if err := tiers.Load(); err != nil {
		t.Fatalf("load tier policies: %v", err)
	}

	tuning := func() config.TuningConfig { return cfg.Tuning }
	classifier := intent.NewClassifier(nil,
		intent.NewFallbackClassifier(func() float64 { return cfg.Tuning.FallbackConfidence }),
		nil, discardLogger(),
	)
	feedback := emotion.NewFeedbackLog(cfg.Tuning.FeedbackLogCapacity)

	o := New(
		classifier,
		emotion.NewAnalyzer(tuning),
		chain,
		tiers,
		feedback,
		nil,
		func() config.RoutingConfig { return cfg.Routing },
		discardLogger(),
	)
	return o, feedback
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessDraftRequest_MissingActionIsValidationError(t *testing.T) {
	o, _ := testOrchestrator(t, &fakeAdapter{name: "openai", text: "hi"})

	_, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestProcessDraftRequest_UnknownActionIsValidationError(t *testing.T) {
	o, _ := testOrchestrator(t, &fakeAdapter{name: "openai", text: "hi"})

	_, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
		Action: "teleport",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestProcessDraftRequest_TierGateRejectsBeforeProviderCall(t *testing.T) {
	provider := &fakeAdapter{name: "openai", text: "hi"}
	o, _ := testOrchestrator(t, provider)

	_, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
		Action: "rewrite",
		Tier:   types.TierFree,
		Email:  types.EmailData{Body: "please improve this"},
	})

	var denied *TierDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected TierDeniedError, got %v", err)
	}
	if provider.calls != 0 {
		t.Error("no provider call may happen for a gated action")
	}
}

func TestProcessDraftRequest_DefaultsToFreeTier(t *testing.T) {
	o, _ := testOrchestrator(t, &fakeAdapter{name: "openai", text: "hi"})

	// rewrite needs pro; an absent tier must behave as free and be denied.
	_, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
		Action: "rewrite",
		Email:  types.EmailData{Body: "x"},
	})
	var denied *TierDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected TierDeniedError for default free tier, got %v", err)
	}
	if denied.Tier != types.TierFree {
		t.Errorf("denied tier = %s, want free", denied.Tier)
	}
}

func TestProcessDraftRequest_Success(t *testing.T) {
	provider := &fakeAdapter{name: "openai", text: "Dear Sam, thanks for reaching out."}
	o, _ := testOrchestrator(t, provider)

	resp, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module:       types.ModuleMail,
		Action:       "reply",
		Tier:         types.TierFree,
		Email:        types.EmailData{Sender: "Sam Doe <sam@example.com>", Body: "Can you send the report?"},
		Instructions: "short and friendly reply",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Result != provider.text {
		t.Errorf("result = %q", resp.Result)
	}
	if resp.Provider != "openai" || resp.Degraded {
		t.Errorf("expected non-degraded openai response, got %+v", resp)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("usage not propagated: %+v", resp.Usage)
	}
}

func TestProcessDraftRequest_PreferredBackendWins(t *testing.T) {
	claude := &fakeAdapter{name: "anthropic", text: "from claude"}
	oai := &fakeAdapter{name: "openai", text: "from openai"}
	o, _ := testOrchestrator(t, claude, oai)

	resp, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module:           types.ModuleMail,
		Action:           "reply",
		Tier:             types.TierFree,
		Email:            types.EmailData{Body: "hello"},
		PreferredBackend: types.BackendClaude,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Provider != "anthropic" {
		t.Errorf("provider = %s, want anthropic", resp.Provider)
	}
	if oai.calls != 0 {
		t.Error("fallback provider should not be called")
	}
}

func TestProcessDraftRequest_DegradesToTemplate(t *testing.T) {
	provider := &fakeAdapter{name: "openai", err: errors.New("503")}
	o, _ := testOrchestrator(t, provider)

	resp, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
		Action: "reply",
		Tier:   types.TierFree,
		Email:  types.EmailData{Sender: "Ana <ana@example.com>", Body: "ping"},
	})
	if err != nil {
		t.Fatalf("expected degraded response, got error %v", err)
	}
	if !resp.Degraded || resp.Provider != "template" {
		t.Errorf("expected template degradation, got %+v", resp)
	}
	if !strings.Contains(resp.Result, "Ana") {
		t.Errorf("template should greet the sender, got %q", resp.Result)
	}
}

func TestProcessDraftRequest_AllSystemsFailed(t *testing.T) {
	provider := &fakeAdapter{name: "openai", err: errors.New("503")}
	o, _ := testOrchestrator(t, provider)

	// rewrite with an empty body has no template to fall back on.
	_, err := o.ProcessDraftRequest(context.Background(), types.DraftRequest{
		Module: types.ModuleMail,
		Action: "rewrite",
		Tier:   types.TierPro,
	})
	if !errors.Is(err, llm.ErrAllProvidersFailed) {
		t.Errorf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestStaticTemplate_Summarize(t *testing.T) {
	text, ok := staticTemplate(types.DraftRequest{
		Action: "summarize",
		Email:  types.EmailData{Body: "A long discussion about the quarterly planning process."},
	})
	if !ok {
		t.Fatal("expected a summarize template")
	}
	if !strings.Contains(text, "quarterly planning") {
		t.Errorf("excerpt missing, got %q", text)
	}
}

func TestProvideFeedback(t *testing.T) {
	o, log := testOrchestrator(t, &fakeAdapter{name: "openai", text: "x"})

	err := o.ProvideFeedback(
		types.DraftRequest{Module: types.ModuleMail, Action: "reply"},
		types.DraftResponse{Provider: "openai"},
		4, "good tone",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Len() != 1 {
		t.Errorf("feedback log len = %d, want 1", log.Len())
	}

	if err := o.ProvideFeedback(types.DraftRequest{}, types.DraftResponse{}, 9, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("out-of-range rating should be a validation error, got %v", err)
	}
}
