package models

import (
	"errors"
	"testing"
)

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        SignupRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  SignupRequest{Email: "a@b.com", Password: "secret1", FullName: "A B"},
		},
		{
			name:       "bad email",
			req:        SignupRequest{Email: "nope", Password: "secret1", FullName: "A B"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        SignupRequest{Email: "a@b.com", Password: "abc", FullName: "A B"},
			wantFields: []string{"password"},
		},
		{
			name:       "everything missing",
			req:        SignupRequest{},
			wantFields: []string{"email", "password", "full_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var errResp *ErrorResponse
			if !errors.As(err, &errResp) {
				t.Fatalf("Validate() = %v, want *ErrorResponse", err)
			}
			if len(errResp.Details) != len(tt.wantFields) {
				t.Fatalf("got %d details, want %d: %+v", len(errResp.Details), len(tt.wantFields), errResp.Details)
			}
			for i, field := range tt.wantFields {
				if errResp.Details[i].Field != field {
					t.Errorf("detail %d field = %q, want %q", i, errResp.Details[i].Field, field)
				}
			}
		})
	}
}

func TestSignupRequestNormalizesEmail(t *testing.T) {
	req := SignupRequest{Email: "  User@Example.COM ", Password: "secret1", FullName: "U"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if req.Email != "user@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", req.Email)
	}
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Email: "a@b.com", Password: "x"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid login: %v", err)
	}

	missingEmail := LoginRequest{Password: "x"}
	if err := missingEmail.Validate(); err == nil {
		t.Errorf("missing email should fail")
	}

	missingPassword := LoginRequest{Email: "a@b.com"}
	if err := missingPassword.Validate(); err == nil {
		t.Errorf("missing password should fail")
	}
}
