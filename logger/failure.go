package logger

import (
	"github.com/kbukum/inspectkit/apierror"
)

// Failure logs a classified API failure. Server and network failures are
// logged at error level, everything else at warn. The raw failure is never
// written.
func (l *Logger) Failure(op string, p *apierror.ParsedError) {
	if p == nil {
		return
	}
	event := l.logger.Warn()
	if p.IsServerError() || p.IsNetworkError() {
		event = l.logger.Error()
	}
	event.Str(FieldOperation, op).
		Str(FieldErrorCode, string(p.Code)).
		Int(FieldHTTPStatus, p.Status).
		Bool(FieldRetryable, apierror.IsRetryable(p))
	if p.RequestID != "" {
		event.Str(FieldRequestID, p.RequestID)
	}
	event.Object("failure", p).Msg(p.Message)
}

// Failure logs a classified API failure on the global logger.
func Failure(op string, p *apierror.ParsedError) {
	GetGlobalLogger().Failure(op, p)
}
