package intent

import (
	"context"
	"strings"

	"github.com/optiverse/opticore/internal/types"
)

// Rule is one entry in the deterministic fallback table. Rules are scanned
// in order against the lowercased input; the first keyword hit wins.
type Rule struct {
	Intent   types.Intent
	Keywords []string
	Backend  types.Backend
	Tone     string
	Defaults types.IntentContext
}

// OrderedRules returns the fallback rule table. Order matters: earlier
// categories shadow later ones, and "other" is the terminal default.
func OrderedRules() []Rule {
	return []Rule{
		{
			Intent:   types.IntentFollowUp,
			Keywords: []string{"follow up", "follow-up", "following up", "checking in", "any update", "circling back"},
			Backend:  types.BackendClaude,
			Tone:     "neutral",
			Defaults: types.IntentContext{Urgency: types.UrgencyNormal, Complexity: types.ComplexitySimple},
		},
		{
			Intent:   types.IntentThankYou,
			Keywords: []string{"thank", "grateful", "appreciate"},
			Backend:  types.BackendOpenAI,
			Tone:     "positive",
			Defaults: types.IntentContext{Urgency: types.UrgencyLow, Complexity: types.ComplexitySimple},
		},
		{
			Intent:   types.IntentApology,
			Keywords: []string{"sorry", "apolog", "my fault", "regret"},
			Backend:  types.BackendClaude,
			Tone:     "remorseful",
			Defaults: types.IntentContext{Urgency: types.UrgencyNormal, Complexity: types.ComplexityModerate},
		},
		{
			Intent:   types.IntentSummarize,
			Keywords: []string{"summar", "tldr", "tl;dr", "key points", "recap"},
			Backend:  types.BackendCohere,
			Tone:     "neutral",
			Defaults: types.IntentContext{Urgency: types.UrgencyLow, Complexity: types.ComplexityModerate},
		},
		{
			Intent:   types.IntentReply,
			Keywords: []string{"reply", "respond", "write back", "answer this"},
			Backend:  types.BackendOpenAI,
			Tone:     "neutral",
			Defaults: types.IntentContext{Urgency: types.UrgencyNormal, Complexity: types.ComplexityModerate},
		},
		{
			Intent:   types.IntentRewrite,
			Keywords: []string{"rewrite", "rephrase", "reword", "polish", "make it sound"},
			Backend:  types.BackendClaude,
			Tone:     "neutral",
			Defaults: types.IntentContext{Urgency: types.UrgencyLow, Complexity: types.ComplexityModerate},
		},
		{
			Intent:   types.IntentSchedule,
			Keywords: []string{"schedule", "meeting", "calendar", "availability", "book a", "reschedule"},
			Backend:  types.BackendGemini,
			Tone:     "neutral",
			Defaults: types.IntentContext{Urgency: types.UrgencyNormal, Complexity: types.ComplexityModerate, NeedsRealTimeInfo: true},
		},
	}
}

// urgencyKeywords escalate urgency regardless of which rule matched.
var urgencyKeywords = []string{"urgent", "asap", "immediately", "right away", "as soon as possible"}

func escalatesUrgency(lower string) bool {
	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FallbackClassifier is the deterministic, network-free classification
// path. It never fails; unmatched input classifies as "other".
type FallbackClassifier struct {
	rules      []Rule
	confidence func() float64
}

// NewFallbackClassifier builds the local classifier. The fixed heuristic
// confidence comes from tuning config (default 0.7).
func NewFallbackClassifier(confidence func() float64) *FallbackClassifier {
	return &FallbackClassifier{rules: OrderedRules(), confidence: confidence}
}

func (f *FallbackClassifier) Name() string { return string(types.SourceFallback) }

func (f *FallbackClassifier) Classify(_ context.Context, text string) (types.IntentClassification, error) {
	lower := strings.ToLower(text)

	cls := types.IntentClassification{
		Intent:           types.IntentOther,
		Confidence:       clamp01(f.confidence()),
		SuggestedBackend: types.BackendOpenAI,
		Context: types.IntentContext{
			Urgency:       types.UrgencyNormal,
			Complexity:    types.ComplexitySimple,
			EmotionalTone: "neutral",
		},
		Source: types.SourceFallback,
	}

	for _, rule := range f.rules {
		if !matchesAny(lower, rule.Keywords) {
			continue
		}
		cls.Intent = rule.Intent
		cls.SuggestedBackend = rule.Backend
		cls.Context = rule.Defaults
		cls.Context.EmotionalTone = rule.Tone
		break
	}

	if escalatesUrgency(lower) {
		cls.Context.Urgency = types.UrgencyHigh
	}

	return cls, nil
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
