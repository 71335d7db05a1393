package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Malformed lot ids must be rejected before any query runs, otherwise they
// surface as a database cast error instead of a client error.
func TestRetireCreditsRejectsMalformedID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not a uuid", `{"credit_id":"not-a-uuid","quantity":5}`},
		{"empty id", `{"credit_id":"","quantity":5}`},
		{"truncated uuid", `{"credit_id":"d2719f0a-1c3b-4e5f","quantity":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/carbon-credits/retire", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			RetireCredits(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if !strings.Contains(rr.Body.String(), "not a valid uuid") {
				t.Errorf("body should name the malformed id: %s", rr.Body.String())
			}
		})
	}
}
