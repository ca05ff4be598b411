package types

// Tier is the subscription level used for capability gating.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierFree, TierPro, TierElite:
		return Tier(s), true
	default:
		return "", false
	}
}

// EmailData is the message content a draft request operates on.
type EmailData struct {
	Subject   string   `json:"subject,omitempty"`
	Body      string   `json:"body,omitempty"`
	Sender    string   `json:"sender,omitempty"`
	Recipient string   `json:"recipient,omitempty"`
	Thread    []string `json:"thread,omitempty"`
}

// DraftRequest is the transient value object passed through the
// orchestrator to the chosen LLM adapter. Never mutated after construction.
type DraftRequest struct {
	Module           Module    `json:"module"`
	Action           string    `json:"action"`
	Email            EmailData `json:"emailData"`
	Instructions     string    `json:"instructions,omitempty"`
	Tier             Tier      `json:"tier,omitempty"`
	PreferredBackend Backend   `json:"preferredBackend,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// DraftResponse carries the generated text back to the UI. Degraded marks
// results produced by the static template fallback rather than a provider.
type DraftResponse struct {
	Result   string `json:"result"`
	Usage    Usage  `json:"usage"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}
