package validation

import (
	"errors"
	"strings"

	"github.com/kbukum/inspectkit/apierror"
)

// Error lists every field that failed validation, in check order.
type Error struct {
	Fields []apierror.FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldErrors extracts the field errors from err, or nil when err is not
// a validation error.
func FieldErrors(err error) []apierror.FieldError {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
