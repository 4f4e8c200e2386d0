package apierror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
)

// Failure is the shape of a raw failure, produced by Inspect. It is one of
// Exception, NoResponse or Responded.
type Failure interface {
	failure()
}

// Exception is a failure that did not come from the transport.
type Exception struct {
	Message string
}

// NoResponse is a transport failure where no response was received.
type NoResponse struct {
	// Aborted is set when the transport signalled an abort or timeout.
	Aborted bool
	// Message is the transport's own message, if it supplied one.
	Message string
}

// Responded is a transport failure carrying a server response.
type Responded struct {
	Status int
	Header http.Header
	Body   []byte
}

func (Exception) failure()  {}
func (NoResponse) failure() {}
func (Responded) failure()  {}

// Inspect determines the shape of err. It never panics; nil, and errors
// whose methods fail, yield an empty Exception. A response without a
// positive status is treated as no response.
func Inspect(err error) (f Failure) {
	if err == nil {
		return Exception{}
	}
	defer func() {
		if r := recover(); r != nil {
			f = Exception{}
		}
	}()

	var te *TransportError
	if errors.As(err, &te) {
		if te == nil {
			return Exception{}
		}
		if te.Response == nil || te.Response.Status <= 0 {
			return NoResponse{Aborted: te.Aborted(), Message: te.Message}
		}
		return Responded{
			Status: te.Response.Status,
			Header: te.Response.Header,
			Body:   te.Response.Body,
		}
	}

	// Errors from net/http itself never carry a response.
	var ue *url.Error
	var ne net.Error
	switch {
	case errors.As(err, &ue), errors.As(err, &ne),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, os.ErrDeadlineExceeded):
		return NoResponse{Aborted: isAbort(err)}
	}

	return Exception{Message: err.Error()}
}
