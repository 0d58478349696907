package models

import (
	"net/mail"
	"strings"
)

const MinPasswordLength = 6

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// implements the Validator interface
func (r *SignupRequest) Validate() error {
	var details []ValidationErrorDetail

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)

	if r.Email == "" {
		details = append(details, ValidationErrorDetail{Field: "email", Reason: "email is required"})
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		details = append(details, ValidationErrorDetail{Field: "email", Reason: "email is not a valid address"})
	}
	if len(r.Password) < MinPasswordLength {
		details = append(details, ValidationErrorDetail{Field: "password", Reason: "password must be at least 6 characters"})
	}
	if r.FullName == "" {
		details = append(details, ValidationErrorDetail{Field: "full_name", Reason: "full_name is required"})
	}

	if len(details) > 0 {
		return &ErrorResponse{
			Message: "validation failed",
			Code:    "validation_error",
			Details: details,
		}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.Email == "" {
		return &ErrorResponse{Message: "email is required", Code: "missing_email"}
	}
	if r.Password == "" {
		return &ErrorResponse{Message: "password is required", Code: "missing_password"}
	}
	return nil
}
