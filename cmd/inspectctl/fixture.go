package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/inspectkit/apierror"
	"github.com/kbukum/inspectkit/validation"
)

// Fixture kinds, one per failure shape.
const (
	kindResponse   = "response"
	kindNoResponse = "no_response"
	kindException  = "exception"
)

const fixtureOp = "fixture"

// fixture is a recorded failure:
//
//	{"kind":"response","status":422,"headers":{"X-Request-Id":"abc"},"body":{"errors":[...]}}
//	{"kind":"no_response","code":"ECONNABORTED","message":"timeout of 5000ms exceeded"}
//	{"kind":"exception","message":"plain failure"}
//
// A string body is used verbatim, any other JSON value is passed as encoded.
type fixture struct {
	Kind    string            `json:"kind"`
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
}

func decodeFixture(r io.Reader) (*fixture, error) {
	var f fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *fixture) validate() error {
	v := validation.New().
		OneOf("kind", f.Kind, []string{kindResponse, kindNoResponse, kindException}).
		Custom(f.Kind == kindNoResponse || f.Code == "", "code", "is only valid for no_response fixtures")
	switch f.Kind {
	case kindResponse:
		v.Range("status", f.Status, 100, 599)
	case kindException:
		v.Required("message", f.Message)
	}
	return v.Validate()
}

// failure rebuilds the error the transport would have raised.
func (f *fixture) failure() error {
	switch f.Kind {
	case kindResponse:
		header := make(http.Header, len(f.Headers))
		for k, v := range f.Headers {
			header.Set(k, v)
		}
		return &apierror.TransportError{
			Op:      fixtureOp,
			Message: http.StatusText(f.Status),
			Response: &apierror.TransportResponse{
				Status: f.Status,
				Header: header,
				Body:   f.body(),
			},
		}
	case kindNoResponse:
		return &apierror.TransportError{Op: fixtureOp, Code: f.Code, Message: f.Message}
	default:
		return errors.New(f.Message)
	}
}

func (f *fixture) body() []byte {
	raw := bytes.TrimSpace(f.Body)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return []byte(s)
		}
	}
	return raw
}
