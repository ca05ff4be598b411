package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/emotion"
	"github.com/optiverse/opticore/internal/intent"
	"github.com/optiverse/opticore/internal/llm"
	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/tiering"
	"github.com/optiverse/opticore/internal/types"
)

// ErrValidation marks requests missing required fields. Surfaced as 400.
var ErrValidation = errors.New("validation failed")

// TierDeniedError reports a capability gate rejection before any provider
// call is attempted.
type TierDeniedError struct {
	Tier   types.Tier
	Action string
	Reason string
}

func (e *TierDeniedError) Error() string {
	return fmt.Sprintf("tier %s may not perform %s: %s", e.Tier, e.Action, e.Reason)
}

// moduleActions maps each module's action enum to the capability name the
// tier policy gates on. Unknown actions are validation failures.
var moduleActions = map[types.Module]map[string]string{
	types.ModuleMail: {
		"compose":   "compose",
		"reply":     "reply",
		"summarize": "summarize",
		"rewrite":   "rewrite",
	},
	types.ModuleHire: {
		"cover_letter":   "compose",
		"outreach":       "compose",
		"summarize":      "summarize",
		"interview_prep": "advanced_ai",
	},
	types.ModuleTrip: {
		"itinerary":    "advanced_ai",
		"packing_list": "compose",
		"summarize":    "summarize",
	},
	types.ModuleShop: {
		"compare":        "advanced_ai",
		"review_request": "compose",
		"summarize":      "summarize",
	},
}

// Orchestrator drives the per-request state machine: validate, gate by
// tier, classify, analyze emotion, call the provider chain, and degrade to
// a static template when every provider fails.
type Orchestrator struct {
	classifier *intent.Classifier
	analyzer   *emotion.Analyzer
	chain      *llm.Chain
	tiers      *tiering.Evaluator
	feedback   *emotion.FeedbackLog
	metrics    *telemetry.Metrics
	routing    func() config.RoutingConfig
	logger     *slog.Logger
}

func New(
	classifier *intent.Classifier,
	analyzer *emotion.Analyzer,
	chain *llm.Chain,
	tiers *tiering.Evaluator,
	feedback *emotion.FeedbackLog,
	metrics *telemetry.Metrics,
	routing func() config.RoutingConfig,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		classifier: classifier,
		analyzer:   analyzer,
		chain:      chain,
		tiers:      tiers,
		feedback:   feedback,
		metrics:    metrics,
		routing:    routing,
		logger:     logger,
	}
}

// ProcessDraftRequest generates text for one module action. A disallowed
// action is rejected before any provider call. Provider failure degrades
// to a static template; the hard error path exists only when no template
// covers the action either.
func (o *Orchestrator) ProcessDraftRequest(ctx context.Context, req types.DraftRequest) (*types.DraftResponse, error) {
	capability, err := validate(req)
	if err != nil {
		return nil, err
	}

	tier := req.Tier
	if tier == "" {
		tier = types.TierFree
	}
	allowed, reason, err := o.tiers.Allow(ctx, tier, req.Module, capability)
	if err != nil {
		o.logger.Error("tier evaluation failed", "module", req.Module, "action", req.Action, "error", err)
	}
	if !allowed {
		return nil, &TierDeniedError{Tier: tier, Action: req.Action, Reason: reason}
	}

	classifyText := req.Instructions
	if classifyText == "" {
		classifyText = req.Email.Body
	}
	cls := o.classifier.Classify(ctx, classifyText)
	analysis := o.analyzer.Analyze(req.Instructions, req.Email.Body, "")

	preferred := req.PreferredBackend
	if preferred == "" {
		preferred = cls.SuggestedBackend
	}

	system, prompt := buildPrompt(req, cls, analysis)

	callCtx, cancel := context.WithTimeout(ctx, o.routing().DefaultTimeout)
	defer cancel()

	result, err := o.chain.Complete(callCtx, preferred, llm.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err == nil {
		return &types.DraftResponse{
			Result:   result.Text,
			Usage:    result.Usage,
			Provider: result.Provider,
			Model:    result.Model,
		}, nil
	}

	o.logger.Warn("all providers failed, trying static template",
		"module", req.Module,
		"action", req.Action,
		"error", err,
	)

	text, ok := staticTemplate(req)
	if !ok {
		return nil, fmt.Errorf("no template for %s/%s: %w", req.Module, req.Action, err)
	}
	return &types.DraftResponse{
		Result:   text,
		Provider: "template",
		Degraded: true,
	}, nil
}

func validate(req types.DraftRequest) (string, error) {
	if strings.TrimSpace(req.Action) == "" {
		return "", fmt.Errorf("%w: action is required", ErrValidation)
	}
	actions, ok := moduleActions[req.Module]
	if !ok {
		return "", fmt.Errorf("%w: unknown module %q", ErrValidation, req.Module)
	}
	capability, ok := actions[req.Action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q for module %s", ErrValidation, req.Action, req.Module)
	}
	return capability, nil
}

// buildPrompt assembles the system and user prompts from the request plus
// the classification and emotional signals.
func buildPrompt(req types.DraftRequest, cls types.IntentClassification, analysis types.EmotionalAnalysis) (string, string) {
	var system strings.Builder
	system.WriteString(systemRole(req.Module))
	fmt.Fprintf(&system, " The user's intent is %s.", cls.Intent)
	if analysis.Sentiment != types.SentimentNeutral {
		fmt.Fprintf(&system, " The emotional context reads %s (dominant: %s); adjust the tone accordingly.",
			analysis.Sentiment, analysis.DominantEmotion)
	}
	if cls.Context.Urgency == types.UrgencyHigh {
		system.WriteString(" The matter is urgent; be direct and concise.")
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Task: %s.\n", req.Action)
	if req.Email.Subject != "" {
		fmt.Fprintf(&prompt, "Subject: %s\n", req.Email.Subject)
	}
	if req.Email.Sender != "" {
		fmt.Fprintf(&prompt, "From: %s\n", req.Email.Sender)
	}
	if req.Email.Body != "" {
		fmt.Fprintf(&prompt, "Message:\n%s\n", req.Email.Body)
	}
	if len(req.Email.Thread) > 0 {
		fmt.Fprintf(&prompt, "Earlier thread (%d messages):\n%s\n",
			len(req.Email.Thread), strings.Join(req.Email.Thread, "\n---\n"))
	}
	if req.Instructions != "" {
		fmt.Fprintf(&prompt, "Instructions: %s\n", req.Instructions)
	}
	return system.String(), prompt.String()
}

func systemRole(module types.Module) string {
	switch module {
	case types.ModuleHire:
		return "You are a career assistant helping with job applications and recruiter correspondence."
	case types.ModuleTrip:
		return "You are a travel assistant helping plan and manage trips."
	case types.ModuleShop:
		return "You are a shopping assistant helping with orders and purchase decisions."
	default:
		return "You are an email assistant drafting clear, well-toned messages."
	}
}
