package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// FieldError is a server-reported validation failure for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParsedError is the normalized form of any failure. It is built fresh by
// Classify and is not meant to be modified afterwards.
type ParsedError struct {
	// Code is always set; it defaults to CodeUnknownError.
	Code ErrorCode
	// Message is never empty.
	Message string
	// Status is the HTTP status, or 0 when no response was received.
	Status int
	// FieldErrors are the server's field errors in the order supplied.
	FieldErrors []FieldError
	// RequestID is the server's correlation id, empty when absent.
	RequestID string
	// Raw is the original failure, kept for diagnostics only.
	Raw error
}

// IsNetworkError reports whether no response was received.
func (p *ParsedError) IsNetworkError() bool {
	return p.Status == 0 && p.Code.IsNetwork()
}

// IsAuthError reports an auth-family code or a 401/403 status.
func (p *ParsedError) IsAuthError() bool {
	return p.Code.IsAuth() ||
		p.Status == http.StatusUnauthorized || p.Status == http.StatusForbidden
}

// IsValidationError reports a validation-family code or a 400/422 status.
func (p *ParsedError) IsValidationError() bool {
	return p.Code.IsValidation() ||
		p.Status == http.StatusBadRequest || p.Status == http.StatusUnprocessableEntity
}

// IsNotFound reports CodeResourceNotFound or a 404 status.
func (p *ParsedError) IsNotFound() bool {
	return p.Code == CodeResourceNotFound || p.Status == http.StatusNotFound
}

// IsServerError reports a server-family code or a 5xx status.
func (p *ParsedError) IsServerError() bool {
	return p.Code.IsServer() || p.Status >= http.StatusInternalServerError
}

// Error implements the error interface.
func (p *ParsedError) Error() string {
	if p == nil {
		return "<nil>"
	}
	if p.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", p.Code, p.Status, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Code, p.Message)
}

// Unwrap returns the original failure.
func (p *ParsedError) Unwrap() error {
	if p == nil {
		return nil
	}
	return p.Raw
}

// parsedJSON is the diagnostic projection. Raw is deliberately absent.
type parsedJSON struct {
	Code              ErrorCode    `json:"code"`
	Message           string       `json:"message"`
	Status            int          `json:"status"`
	FieldErrors       []FieldError `json:"field_errors"`
	RequestID         string       `json:"request_id,omitempty"`
	IsNetworkError    bool         `json:"is_network_error"`
	IsAuthError       bool         `json:"is_auth_error"`
	IsValidationError bool         `json:"is_validation_error"`
	IsNotFound        bool         `json:"is_not_found"`
	IsServerError     bool         `json:"is_server_error"`
}

// MarshalJSON encodes the error for logs and diagnostics without Raw.
func (p *ParsedError) MarshalJSON() ([]byte, error) {
	fields := p.FieldErrors
	if fields == nil {
		fields = []FieldError{}
	}
	return json.Marshal(parsedJSON{
		Code:              p.Code,
		Message:           p.Message,
		Status:            p.Status,
		FieldErrors:       fields,
		RequestID:         p.RequestID,
		IsNetworkError:    p.IsNetworkError(),
		IsAuthError:       p.IsAuthError(),
		IsValidationError: p.IsValidationError(),
		IsNotFound:        p.IsNotFound(),
		IsServerError:     p.IsServerError(),
	})
}

// MarshalZerologObject lets the error be logged with Object(); Raw is skipped.
func (p *ParsedError) MarshalZerologObject(e *zerolog.Event) {
	e.Str("code", string(p.Code)).
		Str("message", p.Message).
		Int("status", p.Status)
	if p.RequestID != "" {
		e.Str("request_id", p.RequestID)
	}
	if len(p.FieldErrors) > 0 {
		e.Array("field_errors", fieldErrorArray(p.FieldErrors))
	}
	e.Bool("network", p.IsNetworkError()).
		Bool("auth", p.IsAuthError()).
		Bool("validation", p.IsValidationError()).
		Bool("not_found", p.IsNotFound()).
		Bool("server", p.IsServerError())
}

type fieldErrorArray []FieldError

func (a fieldErrorArray) MarshalZerologArray(arr *zerolog.Array) {
	for _, fe := range a {
		arr.Dict(zerolog.Dict().Str("field", fe.Field).Str("message", fe.Message))
	}
}
