package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talktrainer-backend/internal/models"
)

func TestChangePasswordRejectsWeakPassword(t *testing.T) {
	h := NewUserHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty password", `{"current_password":"old-pass1","new_password":""}`},
		{"too short", `{"current_password":"old-pass1","new_password":"a1"}`},
		{"no digit", `{"current_password":"old-pass1","new_password":"lettersonly"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/user/password", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ChangePassword(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("expected VALIDATION_ERROR, got %q", resp.Error.Code)
			}
			if _, ok := resp.Error.Fields["new_password"]; !ok {
				t.Errorf("expected field error for new_password, got %v", resp.Error.Fields)
			}
		})
	}
}

func TestChangePasswordRejectsBadBody(t *testing.T) {
	h := NewUserHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/user/password", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
