package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/ratelimit"
	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/types"
)

// Routes assembles the HTTP surface. Endpoint classes map to rate limit
// presets: the LLM-backed endpoints share the strict "ai" preset, action
// execution and feedback use "general", the diagnostics probe uses "admin",
// and /healthz is unlimited.
func Routes(h *Handler, limiter *ratelimit.Limiter, presets func() map[string]config.RateLimitPreset, metrics *telemetry.Metrics, requestID func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/healthz", Healthz)

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter, "ai", presets, metrics))
		r.Post("/intent", h.Intent)
		r.Post("/suggestions/live", h.Suggestions)
		r.Post("/optimail", h.Draft(types.ModuleMail))
		r.Post("/optihire", h.Draft(types.ModuleHire))
		r.Post("/optitrip", h.Draft(types.ModuleTrip))
		r.Post("/optishop", h.Draft(types.ModuleShop))
	})

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter, "general", presets, metrics))
		r.Post("/actions/{id}/execute", h.ExecuteAction)
		r.Post("/optimail/feedback", h.Feedback)
	})

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter, "admin", presets, metrics))
		r.Get("/optimail/diagnostics", h.Diagnostics)
	})

	return r
}

// Healthz reports process liveness only; provider health lives under
// /optimail/diagnostics.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
