package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/inspectkit/apierror"
)

// ErrorCounterName is the instrument name of the classified error counter.
const ErrorCounterName = "classified_errors.total"

// Attribute keys recorded on the classified error counter.
const (
	AttrOperation = "operation"
	AttrCode      = "code"
	AttrStatus    = "http.status"
	AttrRetryable = "retryable"
	AttrLogout    = "logout"
)

// ErrorMetrics counts classified failures. A nil *ErrorMetrics records
// nothing.
type ErrorMetrics struct {
	total metric.Int64Counter
}

// NewErrorMetrics creates the classified error counter on meter.
func NewErrorMetrics(meter metric.Meter) (*ErrorMetrics, error) {
	total, err := meter.Int64Counter(ErrorCounterName,
		metric.WithDescription("Classified API failures by code and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", ErrorCounterName, err)
	}
	return &ErrorMetrics{total: total}, nil
}

// Record counts one classified failure of operation.
func (m *ErrorMetrics) Record(ctx context.Context, operation string, p *apierror.ParsedError) {
	if m == nil || p == nil {
		return
	}
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrCode, p.Code.String()),
		attribute.Int(AttrStatus, p.Status),
		attribute.Bool(AttrRetryable, apierror.IsRetryable(p)),
		attribute.Bool(AttrLogout, apierror.ShouldLogout(p)),
	))
}
