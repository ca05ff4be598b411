package types

// Intent is the coarse classification of what a piece of user text is asking for.
type Intent string

const (
	IntentFollowUp  Intent = "follow_up"
	IntentThankYou  Intent = "thank_you"
	IntentApology   Intent = "apology"
	IntentSummarize Intent = "summarize"
	IntentReply     Intent = "reply"
	IntentRewrite   Intent = "rewrite"
	IntentSchedule  Intent = "schedule"
	IntentOther     Intent = "other"
)

func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentFollowUp, IntentThankYou, IntentApology, IntentSummarize,
		IntentReply, IntentRewrite, IntentSchedule, IntentOther:
		return Intent(s), true
	default:
		return "", false
	}
}

// Backend identifies which LLM provider a classification recommends.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendClaude Backend = "claude"
	BackendGemini Backend = "gemini"
	BackendCohere Backend = "cohere"
)

func ParseBackend(s string) (Backend, bool) {
	switch Backend(s) {
	case BackendOpenAI, BackendClaude, BackendGemini, BackendCohere:
		return Backend(s), true
	default:
		return "", false
	}
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// IntentContext carries the secondary signals attached to a classification.
type IntentContext struct {
	Urgency           Urgency    `json:"urgency"`
	Complexity        Complexity `json:"complexity"`
	EmotionalTone     string     `json:"emotionalTone"`
	NeedsRealTimeInfo bool       `json:"needsRealTimeInfo"`
}

// ClassifierSource records which strategy produced a classification.
type ClassifierSource string

const (
	SourceRemote   ClassifierSource = "remote"
	SourceFallback ClassifierSource = "fallback"
)

// IntentClassification is produced fresh per request and never mutated
// after being returned.
type IntentClassification struct {
	Intent           Intent           `json:"intent"`
	Confidence       float64          `json:"confidence"`
	SuggestedBackend Backend          `json:"suggestedBackend"`
	Context          IntentContext    `json:"context"`
	Source           ClassifierSource `json:"source"`
}
