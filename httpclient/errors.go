package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/kbukum/inspectkit/apierror"
)

// ErrInvalidRequest is wrapped by errors raised while building a request.
// Such failures never reach the network and classify as UNKNOWN_ERROR.
var ErrInvalidRequest = errors.New("httpclient: invalid request")

func newRequestError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// newNoResponseError describes a request that never got a response.
func newNoResponseError(ctx context.Context, op string, err error) *apierror.TransportError {
	return &apierror.TransportError{
		Op:   op,
		Code: transportCode(ctx, err),
		Err:  err,
	}
}

// newResponseError describes a response with a 4xx or 5xx status.
func newResponseError(op string, status int, header http.Header, body []byte) *apierror.TransportError {
	return &apierror.TransportError{
		Op:      op,
		Message: http.StatusText(status),
		Response: &apierror.TransportResponse{
			Status: status,
			Header: header,
			Body:   body,
		},
	}
}

// newReadError describes a response whose body could not be read in full.
// The status line was received, so the partial body is kept with it.
func newReadError(op string, status int, header http.Header, body []byte, err error) *apierror.TransportError {
	te := newResponseError(op, status, header, body)
	te.Err = fmt.Errorf("read response body: %w", err)
	return te
}

func transportCode(ctx context.Context, err error) string {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return apierror.TransportCodeTimeout
	case errors.Is(err, context.Canceled), ctx.Err() != nil:
		return apierror.TransportCodeAborted
	case errors.Is(err, syscall.ECONNREFUSED):
		return apierror.TransportCodeRefused
	default:
		return apierror.TransportCodeNetwork
	}
}
