package intent

import (
	"context"
	"testing"

	"github.com/optiverse/opticore/internal/types"
)

func newTestFallback() *FallbackClassifier {
	return NewFallbackClassifier(func() float64 { return 0.7 })
}

func TestFallbackClassifier_RuleTable(t *testing.T) {
	tests := []struct {
		input   string
		intent  types.Intent
		backend types.Backend
	}{
		{"just following up on my last email", types.IntentFollowUp, types.BackendClaude},
		{"thank you so much for your help", types.IntentThankYou, types.BackendOpenAI},
		{"I'm so sorry about the delay", types.IntentApology, types.BackendClaude},
		{"please summarize this thread", types.IntentSummarize, types.BackendCohere},
		{"can you reply to Sarah", types.IntentReply, types.BackendOpenAI},
		{"rewrite this to sound more formal", types.IntentRewrite, types.BackendClaude},
		{"schedule a meeting for Tuesday", types.IntentSchedule, types.BackendGemini},
		{"what is the weather like", types.IntentOther, types.BackendOpenAI},
	}

	f := newTestFallback()
	for _, tt := range tests {
		cls, err := f.Classify(context.Background(), tt.input)
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", tt.input, err)
		}
		if cls.Intent != tt.intent {
			t.Errorf("Classify(%q).Intent = %s, want %s", tt.input, cls.Intent, tt.intent)
		}
		if cls.SuggestedBackend != tt.backend {
			t.Errorf("Classify(%q).SuggestedBackend = %s, want %s", tt.input, cls.SuggestedBackend, tt.backend)
		}
		if cls.Confidence != 0.7 {
			t.Errorf("Classify(%q).Confidence = %v, want 0.7", tt.input, cls.Confidence)
		}
		if cls.Source != types.SourceFallback {
			t.Errorf("Classify(%q).Source = %s, want fallback", tt.input, cls.Source)
		}
	}
}

func TestFallbackClassifier_ThankWithoutEarlierMatchIsThankYou(t *testing.T) {
	f := newTestFallback()

	cls, _ := f.Classify(context.Background(), "thanks a lot, this was perfect")
	if cls.Intent != types.IntentThankYou {
		t.Fatalf("expected thank_you, got %s", cls.Intent)
	}
	if cls.Context.EmotionalTone != "positive" {
		t.Errorf("thank_you tone = %q, want positive", cls.Context.EmotionalTone)
	}
}

func TestFallbackClassifier_EarlierRuleShadowsLater(t *testing.T) {
	f := newTestFallback()

	// Contains both "following up" (rule 1) and "thank" (rule 2).
	cls, _ := f.Classify(context.Background(), "following up, and thank you again")
	if cls.Intent != types.IntentFollowUp {
		t.Errorf("expected follow_up to win, got %s", cls.Intent)
	}
}

func TestFallbackClassifier_UrgencyEscalation(t *testing.T) {
	f := newTestFallback()

	cls, _ := f.Classify(context.Background(), "reply to this ASAP please")
	if cls.Intent != types.IntentReply {
		t.Fatalf("expected reply, got %s", cls.Intent)
	}
	if cls.Context.Urgency != types.UrgencyHigh {
		t.Errorf("urgency = %s, want high", cls.Context.Urgency)
	}
}

func TestFallbackClassifier_ScheduleNeedsRealTimeInfo(t *testing.T) {
	f := newTestFallback()

	cls, _ := f.Classify(context.Background(), "book a meeting with the team")
	if !cls.Context.NeedsRealTimeInfo {
		t.Error("schedule intent should set needsRealTimeInfo")
	}
}

func TestFallbackClassifier_ConfidenceClamped(t *testing.T) {
	f := NewFallbackClassifier(func() float64 { return 1.5 })

	cls, _ := f.Classify(context.Background(), "anything")
	if cls.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", cls.Confidence)
	}
}

func TestFallbackClassifier_EmptyInputIsOther(t *testing.T) {
	f := newTestFallback()

	cls, _ := f.Classify(context.Background(), "")
	if cls.Intent != types.IntentOther {
		t.Errorf("empty input intent = %s, want other", cls.Intent)
	}
}
