package types

// SuggestionCategory groups ranked suggestions for the UI. Only candidates
// in the primary category are eligible for one-click promotion.
type SuggestionCategory string

const (
	CategoryPrimary     SuggestionCategory = "primary"
	CategorySecondary   SuggestionCategory = "secondary"
	CategoryContextual  SuggestionCategory = "contextual"
	CategoryCrossModule SuggestionCategory = "cross_module"
)

// ActionSuggestion is one ranked candidate next-step for the user.
type ActionSuggestion struct {
	ID                   string             `json:"id"`
	Category             SuggestionCategory `json:"category"`
	Action               string             `json:"action"`
	Label                string             `json:"label"`
	Icon                 string             `json:"icon"`
	Confidence           float64            `json:"confidence"`
	RequiresConfirmation bool               `json:"requiresConfirmation"`
	EstimatedTime        string             `json:"estimatedTime,omitempty"`
	Parameters           map[string]string  `json:"parameters,omitempty"`
}

// SuggestionPipelineResult is the full output of one suggestion round-trip.
// PrimaryAction is set only when the ranker promoted a candidate; it is
// excluded from Suggestions in that case.
type SuggestionPipelineResult struct {
	Suggestions      []ActionSuggestion `json:"suggestions"`
	PrimaryAction    *ActionSuggestion  `json:"primaryAction,omitempty"`
	ContextualHints  []string           `json:"contextualHints"`
	Reasoning        string             `json:"reasoning"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}
