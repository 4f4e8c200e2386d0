package apierror

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// networkErrorPhrase is the generic message some transports use for every
// connection failure. It carries no detail, so the default message wins.
const networkErrorPhrase = "Network Error"

const headerRequestID = "X-Request-Id"

// Classify converts any failure into a *ParsedError. It never panics and
// never returns nil. An error that already wraps a *ParsedError yields a
// copy of it.
func Classify(err error) (p *ParsedError) {
	defer func() {
		if r := recover(); r != nil {
			p = &ParsedError{Code: CodeUnknownError, Message: MessageUnknown, Raw: err}
		}
	}()

	var prev *ParsedError
	if errors.As(err, &prev) {
		if prev == nil {
			return &ParsedError{Code: CodeUnknownError, Message: MessageUnknown, Raw: err}
		}
		cp := *prev
		cp.FieldErrors = append([]FieldError(nil), prev.FieldErrors...)
		return &cp
	}
	p = ClassifyFailure(Inspect(err))
	p.Raw = err
	return p
}

// ClassifyFailure classifies an already inspected failure.
func ClassifyFailure(f Failure) (p *ParsedError) {
	defer func() {
		if r := recover(); r != nil {
			p = &ParsedError{Code: CodeUnknownError, Message: MessageUnknown}
		}
	}()

	switch f := f.(type) {
	case Exception:
		return &ParsedError{
			Code:    CodeUnknownError,
			Message: coalesce(f.Message, MessageUnknown),
		}
	case NoResponse:
		if f.Aborted {
			return &ParsedError{Code: CodeTimeoutError, Message: MessageTimeout}
		}
		msg := MessageNetwork
		if m := strings.TrimSpace(f.Message); m != "" && !strings.Contains(m, networkErrorPhrase) {
			msg = m
		}
		return &ParsedError{Code: CodeNetworkError, Message: msg}
	case Responded:
		return classifyResponse(f)
	default:
		return &ParsedError{Code: CodeUnknownError, Message: MessageUnknown}
	}
}

// classifyResponse handles a received response. A status of zero or less
// means the transport never saw a status line, so it is a network failure.
func classifyResponse(r Responded) *ParsedError {
	status := r.Status
	if status <= 0 {
		return ClassifyFailure(NoResponse{})
	}
	p := &ParsedError{
		Code:   CodeForStatus(status),
		Status: status,
	}

	body := decodeBody(r.Body)
	if s, ok := getString(body, "code"); ok {
		if code, ok := ParseCode(s); ok {
			p.Code = code
		}
	}

	msg, _ := getString(body, "message")
	legacy, _ := getString(body, "error")
	p.Message = coalesce(msg, legacy, DefaultMessage(status))

	p.RequestID, _ = getString(body, "request_id")
	if p.RequestID == "" && r.Header != nil {
		if id := r.Header.Get(headerRequestID); strings.TrimSpace(id) != "" {
			p.RequestID = id
		}
	}

	p.FieldErrors = fieldErrors(body["errors"])
	return p
}

// decodeBody returns the body as a JSON object, or nil for any other shape.
func decodeBody(raw []byte) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil
	}
	return obj
}

// fieldErrors copies an "errors" array. Anything that is not an array yields
// an empty list; array elements that are not objects are skipped.
func fieldErrors(v any) []FieldError {
	list, ok := v.([]any)
	if !ok {
		return []FieldError{}
	}
	out := make([]FieldError, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field, _ := obj["field"].(string)
		message, _ := obj["message"].(string)
		out = append(out, FieldError{Field: field, Message: message})
	}
	return out
}

// getString returns the string at key as sent. Blank strings are absent.
func getString(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func coalesce(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
