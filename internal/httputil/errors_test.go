package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationError(w, "req-1", "action is required")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if apiErr.Error.Code != "validation_failed" {
		t.Errorf("expected code validation_failed, got %s", apiErr.Error.Code)
	}
	if apiErr.Error.RequestID != "req-1" {
		t.Errorf("expected request id req-1, got %s", apiErr.Error.RequestID)
	}
}

func TestWriteErrors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"rate limit", func(w http.ResponseWriter) { WriteRateLimitError(w, "r", "slow down") }, 429, "rate_limit_exceeded"},
		{"not found", func(w http.ResponseWriter) { WriteNotFoundError(w, "r", "no such action") }, 404, "not_found"},
		{"tier denied", func(w http.ResponseWriter) { WriteTierDeniedError(w, "r", "upgrade") }, 403, "tier_restricted"},
		{"all providers failed", func(w http.ResponseWriter) { WriteAllProvidersFailedError(w, "r", "down") }, 500, "all_providers_failed"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "r", "oops") }, 500, "internal_error"},
		{"unavailable", func(w http.ResponseWriter) { WriteServiceUnavailableError(w, "r", "later") }, 503, "service_unavailable"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		tt.write(w)
		if w.Code != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.name, tt.status, w.Code)
		}
		var apiErr APIError
		json.Unmarshal(w.Body.Bytes(), &apiErr)
		if apiErr.Error.Code != tt.code {
			t.Errorf("%s: expected code %s, got %s", tt.name, tt.code, apiErr.Error.Code)
		}
	}
}
