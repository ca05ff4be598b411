package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/optiverse/opticore/internal/crossmodule"
	"github.com/optiverse/opticore/internal/emotion"
	"github.com/optiverse/opticore/internal/httputil"
	"github.com/optiverse/opticore/internal/intent"
	"github.com/optiverse/opticore/internal/llm"
	"github.com/optiverse/opticore/internal/orchestrator"
	"github.com/optiverse/opticore/internal/suggest"
	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/types"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	classifier   *intent.Classifier
	analyzer     *emotion.Analyzer
	generator    *suggest.Generator
	orchestrator *orchestrator.Orchestrator
	executor     *crossmodule.Executor
	actions      *crossmodule.PendingActionRegistry
	prober       *llm.Prober
	metrics      *telemetry.Metrics
	logger       *slog.Logger
}

func NewHandler(
	classifier *intent.Classifier,
	analyzer *emotion.Analyzer,
	generator *suggest.Generator,
	orch *orchestrator.Orchestrator,
	executor *crossmodule.Executor,
	actions *crossmodule.PendingActionRegistry,
	prober *llm.Prober,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		classifier:   classifier,
		analyzer:     analyzer,
		generator:    generator,
		orchestrator: orch,
		executor:     executor,
		actions:      actions,
		prober:       prober,
		metrics:      metrics,
		logger:       logger,
	}
}

type intentRequest struct {
	Text string `json:"text"`
}

// Intent handles POST /intent.
func (h *Handler) Intent(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, reqID, "Invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		httputil.WriteValidationError(w, reqID, "text is required")
		return
	}

	cls := h.classifier.Classify(r.Context(), req.Text)
	h.recordRequest("intent", "ok")
	writeJSON(w, http.StatusOK, cls)
}

type suggestionsRequest struct {
	UserInput       string                      `json:"userInput"`
	Intent          *types.IntentClassification `json:"intent,omitempty"`
	Confidence      *float64                    `json:"confidence,omitempty"`
	Extraction      *crossmodule.Extraction     `json:"extraction,omitempty"`
	UserProfile     map[string]string           `json:"userProfile,omitempty"`
	ContactProfile  map[string]string           `json:"contactProfile,omitempty"`
	ThreadContext   []string                    `json:"threadContext,omitempty"`
	CalendarContext []string                    `json:"calendarContext,omitempty"`
}

// Suggestions handles POST /suggestions/live. Classification and emotional
// analysis run here when the caller did not supply a classification of its
// own.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, reqID, "Invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		httputil.WriteValidationError(w, reqID, "userInput is required")
		return
	}

	cls := req.Intent
	if cls == nil {
		c := h.classifier.Classify(r.Context(), req.UserInput)
		cls = &c
	} else if req.Confidence != nil {
		cls.Confidence = clamp01(*req.Confidence)
	}

	analysis := h.analyzer.Analyze(req.UserInput, strings.Join(req.ThreadContext, "\n"), "")

	var contacts []string
	for k, v := range req.ContactProfile {
		contacts = append(contacts, k+"="+v)
	}

	result := h.generator.Generate(r.Context(), suggest.Context{
		UserInput:  req.UserInput,
		Intent:     cls,
		Emotion:    &analysis,
		Extraction: req.Extraction,
		Thread:     req.ThreadContext,
		Calendar:   req.CalendarContext,
		Contacts:   contacts,
	})

	h.recordRequest("suggestions", "ok")
	writeJSON(w, http.StatusOK, result)
}

type draftRequestBody struct {
	Action       string          `json:"action"`
	Email        types.EmailData `json:"emailData"`
	Instructions string          `json:"instructions,omitempty"`
	Tier         string          `json:"tier,omitempty"`
	Backend      string          `json:"preferredBackend,omitempty"`
}

// Draft returns the POST handler for one module's draft endpoint. The four
// module endpoints share an envelope and differ only in their action enums.
func (h *Handler) Draft(module types.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := w.Header().Get("X-Request-ID")

		var body draftRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.WriteValidationError(w, reqID, "Invalid JSON: "+err.Error())
			return
		}

		req := types.DraftRequest{
			Module:       module,
			Action:       body.Action,
			Email:        body.Email,
			Instructions: body.Instructions,
		}
		if tier, ok := types.ParseTier(body.Tier); ok {
			req.Tier = tier
		}
		if backend, ok := types.ParseBackend(body.Backend); ok {
			req.PreferredBackend = backend
		}

		resp, err := h.orchestrator.ProcessDraftRequest(r.Context(), req)
		if err != nil {
			h.writeDraftError(w, reqID, module, err)
			return
		}

		h.recordRequest(string(module), "ok")
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) writeDraftError(w http.ResponseWriter, reqID string, module types.Module, err error) {
	var denied *orchestrator.TierDeniedError
	switch {
	case errors.Is(err, orchestrator.ErrValidation):
		h.recordRequest(string(module), "invalid")
		httputil.WriteValidationError(w, reqID, err.Error())
	case errors.As(err, &denied):
		h.recordRequest(string(module), "tier_denied")
		httputil.WriteTierDeniedError(w, reqID, denied.Error())
	case errors.Is(err, llm.ErrNotConfigured):
		h.recordRequest(string(module), "not_configured")
		h.logger.Error("no provider configured for draft", "module", module, "request_id", reqID, "error", err)
		httputil.WriteServiceUnavailableError(w, reqID, "No AI provider is configured")
	case errors.Is(err, llm.ErrAllProvidersFailed):
		h.recordRequest(string(module), "all_failed")
		h.logger.Error("draft generation failed on every path", "module", module, "request_id", reqID, "error", err)
		httputil.WriteAllProvidersFailedError(w, reqID, "Unable to generate a draft right now")
	default:
		h.recordRequest(string(module), "error")
		h.logger.Error("draft generation failed", "module", module, "request_id", reqID, "error", err)
		httputil.WriteInternalError(w, reqID, "Internal error")
	}
}

// ExecuteAction handles POST /actions/{id}/execute. The action must still
// be pending in the registry; detection and execution share one process, so
// an unknown id means the action expired or never existed.
func (h *Handler) ExecuteAction(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	id := chi.URLParam(r, "id")
	action, ok := h.actions.Get(id)
	if !ok {
		h.recordRequest("actions", "not_found")
		httputil.WriteNotFoundError(w, reqID, "no pending action with id "+id)
		return
	}

	result := h.executor.Execute(action)
	h.recordRequest("actions", string(result.Status))
	writeJSON(w, http.StatusOK, result)
}

type feedbackRequestBody struct {
	Module   string `json:"module,omitempty"`
	Action   string `json:"action"`
	Provider string `json:"provider,omitempty"`
	Rating   int    `json:"rating"`
	Notes    string `json:"notes,omitempty"`
}

// Feedback handles POST /optimail/feedback.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	var body feedbackRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteValidationError(w, reqID, "Invalid JSON: "+err.Error())
		return
	}

	req := types.DraftRequest{Module: types.ModuleMail, Action: body.Action}
	if m, ok := types.ParseModule(body.Module); ok {
		req.Module = m
	}
	resp := types.DraftResponse{Provider: body.Provider}

	if err := h.orchestrator.ProvideFeedback(req, resp, body.Rating, body.Notes); err != nil {
		h.recordRequest("feedback", "invalid")
		httputil.WriteValidationError(w, reqID, err.Error())
		return
	}

	h.recordRequest("feedback", "ok")
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// Diagnostics handles GET /optimail/diagnostics.
func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	report := h.prober.Run(r.Context())
	h.recordRequest("diagnostics", report.Overall)
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) recordRequest(module, status string) {
	if h.metrics != nil {
		h.metrics.RecordRequest(module, status)
	}
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
