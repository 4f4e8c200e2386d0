package apierror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Transport-level codes set on TransportError.Code.
const (
	TransportCodeAborted = "ECONNABORTED"
	TransportCodeTimeout = "ETIMEDOUT"
	TransportCodeRefused = "ECONNREFUSED"
	TransportCodeNetwork = "ERR_NETWORK"
)

// TransportResponse is the part of a server response kept on a failure.
type TransportResponse struct {
	Status int
	Header http.Header
	// Body is the raw (size-limited) response body.
	Body []byte
}

// TransportError is raised by the HTTP layer. A nil Response means the
// request never completed a round trip.
type TransportError struct {
	// Op describes the request, e.g. "GET /inspections/42".
	Op string
	// Code is a transport-level code such as TransportCodeAborted.
	Code string
	// Message is the transport's own description, if any.
	Message  string
	Response *TransportResponse
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Response != nil {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Response.Status, msg)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Aborted reports whether the transport gave up on the request itself,
// through an explicit abort code, a deadline or a cancelled context.
func (e *TransportError) Aborted() bool {
	if e == nil {
		return false
	}
	switch e.Code {
	case TransportCodeAborted, TransportCodeTimeout:
		return true
	}
	return e.Err != nil && isAbort(e.Err)
}

func isAbort(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
