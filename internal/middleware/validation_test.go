package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abhishekjc19/fluentia/internal/models"
)

func serveValidated[T Validator](body string, next http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ValidateRequest[T]()(next).ServeHTTP(rec, req)
	return rec
}

func TestValidateRequestPassesValidBody(t *testing.T) {
	var got *models.LoginRequest
	rec := serveValidated[*models.LoginRequest](`{"email":"a@b.com","password":"secret1"}`, func(w http.ResponseWriter, r *http.Request) {
		got = GetValidatedRequest[*models.LoginRequest](r)
		w.WriteHeader(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.Email != "a@b.com" {
		t.Errorf("validated request = %+v", got)
	}
}

func TestValidateRequestRejectsMalformedJSON(t *testing.T) {
	rec := serveValidated[*models.LoginRequest](`{"email":`, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler should not be reached")
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var response models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if response.Code != "invalid_json" {
		t.Errorf("code = %q, want invalid_json", response.Code)
	}
}

func TestValidateRequestRejectsInvalidFields(t *testing.T) {
	rec := serveValidated[*models.SignupRequest](`{"email":"bad","password":"x","full_name":""}`, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler should not be reached")
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var response models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(response.Details) == 0 {
		t.Errorf("expected field-level details, got %+v", response)
	}
}
