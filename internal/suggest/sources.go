package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/optiverse/opticore/internal/crossmodule"
	"github.com/optiverse/opticore/internal/types"
)

// Context is the input snapshot one suggestion round operates on. All
// fields except UserInput are optional; absent context simply narrows
// which sources contribute.
type Context struct {
	UserInput  string
	Intent     *types.IntentClassification
	Emotion    *types.EmotionalAnalysis
	Extraction *crossmodule.Extraction
	Thread     []string
	Calendar   []string
	Contacts   []string
}

// Candidates is what one source contributes: zero or more suggestions plus
// an optional explanation fragment for the reasoning string.
type Candidates struct {
	Suggestions []types.ActionSuggestion
	Reasoning   string
}

// Source produces candidate suggestions from one signal. Sources run
// concurrently and independently; a failing source contributes nothing.
type Source interface {
	Name() string
	Generate(ctx context.Context, sc Context) (Candidates, error)
}

// intentSource maps the classified intent to action templates.
type intentSource struct{}

func (intentSource) Name() string { return "intent" }

func (intentSource) Generate(_ context.Context, sc Context) (Candidates, error) {
	if sc.Intent == nil {
		return Candidates{}, nil
	}

	tmpl, ok := intentTemplates[sc.Intent.Intent]
	if !ok {
		return Candidates{}, nil
	}

	suggestions := make([]types.ActionSuggestion, 0, len(tmpl))
	for _, s := range tmpl {
		s.ID = uuid.NewString()
		// Template confidence is scaled by how sure the classifier was.
		s.Confidence = s.Confidence * sc.Intent.Confidence
		suggestions = append(suggestions, s)
	}
	return Candidates{
		Suggestions: suggestions,
		Reasoning:   fmt.Sprintf("intent %s (%.0f%% confidence)", sc.Intent.Intent, sc.Intent.Confidence*100),
	}, nil
}

// intentTemplates are the per-intent action candidates. The leading entry
// per intent is the promotion candidate: category primary, near-full
// template confidence.
var intentTemplates = map[types.Intent][]types.ActionSuggestion{
	types.IntentFollowUp: {
		{Category: types.CategoryPrimary, Action: "draft_follow_up", Label: "Draft a follow-up", Icon: "send", Confidence: 1.0, EstimatedTime: "30s"},
		{Category: types.CategorySecondary, Action: "set_reminder", Label: "Remind me later", Icon: "clock", Confidence: 0.6},
	},
	types.IntentThankYou: {
		{Category: types.CategoryPrimary, Action: "draft_thank_you", Label: "Send a thank-you note", Icon: "heart", Confidence: 1.0, EstimatedTime: "15s"},
	},
	types.IntentApology: {
		{Category: types.CategoryPrimary, Action: "draft_apology", Label: "Draft an apology", Icon: "message", Confidence: 1.0, EstimatedTime: "45s"},
		{Category: types.CategorySecondary, Action: "schedule_call", Label: "Offer a call instead", Icon: "phone", Confidence: 0.5, RequiresConfirmation: true},
	},
	types.IntentSummarize: {
		{Category: types.CategoryPrimary, Action: "summarize_thread", Label: "Summarize this thread", Icon: "list", Confidence: 1.0, EstimatedTime: "20s"},
	},
	types.IntentReply: {
		{Category: types.CategoryPrimary, Action: "draft_reply", Label: "Draft a reply", Icon: "reply", Confidence: 1.0, EstimatedTime: "30s"},
		{Category: types.CategorySecondary, Action: "suggest_tone", Label: "Suggest a tone", Icon: "palette", Confidence: 0.55},
	},
	types.IntentRewrite: {
		{Category: types.CategoryPrimary, Action: "rewrite_draft", Label: "Rewrite the draft", Icon: "edit", Confidence: 1.0, EstimatedTime: "25s"},
	},
	types.IntentSchedule: {
		{Category: types.CategoryPrimary, Action: "propose_times", Label: "Propose meeting times", Icon: "calendar", Confidence: 1.0, EstimatedTime: "40s", RequiresConfirmation: true},
		{Category: types.CategorySecondary, Action: "check_calendar", Label: "Check my calendar", Icon: "calendar", Confidence: 0.65},
	},
}

// emotionSource converts analyzer advice into low-stakes suggestions.
type emotionSource struct{}

func (emotionSource) Name() string { return "emotional" }

func (emotionSource) Generate(_ context.Context, sc Context) (Candidates, error) {
	if sc.Emotion == nil || len(sc.Emotion.Suggestions) == 0 {
		return Candidates{}, nil
	}

	suggestions := make([]types.ActionSuggestion, 0, len(sc.Emotion.Suggestions))
	for _, advice := range sc.Emotion.Suggestions {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:         uuid.NewString(),
			Category:   types.CategorySecondary,
			Action:     "adjust_tone",
			Label:      advice,
			Icon:       "sparkles",
			Confidence: sc.Emotion.Confidence * 0.7,
		})
	}
	return Candidates{
		Suggestions: suggestions,
		Reasoning:   fmt.Sprintf("dominant emotion %s", sc.Emotion.DominantEmotion),
	}, nil
}

// crossModuleSource surfaces detected sibling-module actions.
type crossModuleSource struct {
	detector *crossmodule.Detector
}

func (crossModuleSource) Name() string { return "cross_module" }

func (s crossModuleSource) Generate(_ context.Context, sc Context) (Candidates, error) {
	if s.detector == nil {
		return Candidates{}, nil
	}

	actions := s.detector.Analyze(sc.UserInput, strings.Join(sc.Thread, "\n"))
	if len(actions) == 0 {
		return Candidates{}, nil
	}

	suggestions := make([]types.ActionSuggestion, 0, len(actions))
	for _, a := range actions {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:                   a.ID,
			Category:             types.CategoryCrossModule,
			Action:               a.ActionType,
			Label:                crossModuleLabel(a),
			Icon:                 "link",
			Confidence:           0.75,
			RequiresConfirmation: true,
			Parameters:           a.Payload,
		})
	}
	return Candidates{
		Suggestions: suggestions,
		Reasoning:   fmt.Sprintf("%d cross-module signal(s)", len(actions)),
	}, nil
}

func crossModuleLabel(a types.CrossModuleAction) string {
	switch a.TargetModule {
	case types.ModuleHire:
		return "Track this job opportunity in OptiHire"
	case types.ModuleTrip:
		return "Add this trip to OptiTrip"
	case types.ModuleShop:
		return "Track this order in OptiShop"
	default:
		return "Send to " + string(a.TargetModule)
	}
}

// contextSource derives hints from thread, calendar and contact snapshots.
type contextSource struct{}

func (contextSource) Name() string { return "contextual" }

func (contextSource) Generate(_ context.Context, sc Context) (Candidates, error) {
	var suggestions []types.ActionSuggestion

	if len(sc.Thread) > 3 {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:         uuid.NewString(),
			Category:   types.CategoryContextual,
			Action:     "summarize_thread",
			Label:      "Long thread: summarize before replying",
			Icon:       "list",
			Confidence: 0.5,
		})
	}
	if len(sc.Calendar) > 0 {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:         uuid.NewString(),
			Category:   types.CategoryContextual,
			Action:     "check_calendar",
			Label:      "You have upcoming events that may be relevant",
			Icon:       "calendar",
			Confidence: 0.45,
		})
	}
	if sc.Extraction != nil && sc.Extraction.Date != "" {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:         uuid.NewString(),
			Category:   types.CategoryContextual,
			Action:     "create_calendar_event",
			Label:      "Add " + sc.Extraction.Date + " to your calendar",
			Icon:       "calendar-plus",
			Confidence: 0.45,
		})
	}
	if len(sc.Contacts) > 0 {
		suggestions = append(suggestions, types.ActionSuggestion{
			ID:         uuid.NewString(),
			Category:   types.CategoryContextual,
			Action:     "view_contact",
			Label:      "Review the sender's recent history",
			Icon:       "user",
			Confidence: 0.4,
		})
	}

	if len(suggestions) == 0 {
		return Candidates{}, nil
	}
	return Candidates{Suggestions: suggestions, Reasoning: "context snapshots supplied"}, nil
}
