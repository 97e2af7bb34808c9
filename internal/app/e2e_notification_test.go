//go:build e2e

package app_test

import (
	"net/http"
	"testing"
)

func TestEmailStatus(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/admin/email/status", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var data struct {
		Available *bool `json:"available"`
	}
	decodeSuccess(t, body, &data)
	if data.Available == nil {
		t.Fatal("missing available flag")
	}
}

func TestBroadcast(t *testing.T) {
	t.Run("Validation", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, "/api/admin/broadcast", map[string]string{"message": "m"})
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
	})

	t.Run("ReplayedKey", func(t *testing.T) {
		key := uniqueStaffID("e2e-broadcast")
		payload := map[string]string{"subject": "E2E", "message": "Ignore this message"}

		first, body := doJSON(t, http.MethodPost, "/api/admin/broadcast", payload, "Idempotency-Key", key)
		switch first {
		case http.StatusOK:
			var data struct {
				TotalRecipients int   `json:"totalRecipients"`
				Succeeded       int   `json:"succeeded"`
				Failed          []any `json:"failed"`
			}
			decodeSuccess(t, body, &data)
			if data.Succeeded+len(data.Failed) != data.TotalRecipients {
				t.Fatalf("inconsistent report %+v", data)
			}
		case http.StatusServiceUnavailable:
			if msg := decodeError(t, body).Message; msg != "Email service not available" {
				t.Fatalf("unexpected message %q", msg)
			}
		default:
			t.Fatalf("unexpected status %d", first)
		}

		second, _ := doJSON(t, http.MethodPost, "/api/admin/broadcast", payload, "Idempotency-Key", key)
		if second != http.StatusConflict {
			t.Fatalf("expected 409 on replay, got %d", second)
		}
	})
}
