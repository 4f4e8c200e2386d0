package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
	"testing"

	"github.com/kbukum/inspectkit/apierror"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTransportCode(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want string
	}{
		{"deadline", context.Background(), context.DeadlineExceeded, apierror.TransportCodeTimeout},
		{"net timeout", context.Background(), timeoutErr{}, apierror.TransportCodeTimeout},
		{"cancelled error", context.Background(), context.Canceled, apierror.TransportCodeAborted},
		{"cancelled context", cancelled, errors.New("read: closed"), apierror.TransportCodeAborted},
		{"refused", context.Background(), fmt.Errorf("dial: %w", syscall.ECONNREFUSED), apierror.TransportCodeRefused},
		{"other", context.Background(), errors.New("no such host"), apierror.TransportCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transportCode(tt.ctx, tt.err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewResponseError(t *testing.T) {
	header := http.Header{"X-Request-Id": []string{"req-1"}}
	err := newResponseError("GET /assets/1", 404, header, []byte(`{}`))

	if err.Response == nil || err.Response.Status != 404 {
		t.Fatalf("expected response with status 404, got %+v", err.Response)
	}
	if err.Error() != "GET /assets/1: HTTP 404: Not Found" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	p := apierror.Classify(err)
	if !p.IsNotFound() || p.RequestID != "req-1" {
		t.Errorf("unexpected classification: %+v", p)
	}
}

func TestNewReadError(t *testing.T) {
	err := newReadError("GET /assets/1", 200, nil, []byte(`{"id":`), io.ErrUnexpectedEOF)

	if err.Response == nil || err.Response.Status != 200 {
		t.Fatalf("expected response with status 200, got %+v", err.Response)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected the read error to stay reachable")
	}

	p := apierror.Classify(err)
	if p.Status != 200 || p.IsNetworkError() {
		t.Errorf("expected a received status, got %+v", p)
	}
}

func TestNewNoResponseError(t *testing.T) {
	err := newNoResponseError(context.Background(), "GET /", fmt.Errorf("dial: %w", syscall.ECONNREFUSED))
	p := apierror.Classify(err)
	if p.Code != apierror.CodeNetworkError || p.Message != apierror.MessageNetwork {
		t.Errorf("unexpected classification: %+v", p)
	}
	if !errors.Is(p, syscall.ECONNREFUSED) {
		t.Error("expected the cause to stay reachable")
	}
}

func TestNewRequestError(t *testing.T) {
	err := newRequestError("encode body: %v", "bad")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("expected ErrInvalidRequest")
	}
	if p := apierror.Classify(err); p.Code != apierror.CodeUnknownError {
		t.Errorf("expected UNKNOWN_ERROR, got %s", p.Code)
	}
}
