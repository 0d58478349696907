package models

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Message string                  `json:"error"`
	Code    string                  `json:"code,omitempty"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GenerationResponse is the raw output of one Oracle call.
type GenerationResponse struct {
	Content  string             `json:"content"`
	Metadata GenerationMetadata `json:"metadata"`
}

// additional information about a generation
type GenerationMetadata struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	ProcessingTime int    `json:"processing_time_ms"`
}
