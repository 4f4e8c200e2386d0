package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/inspectkit/apierror"
)

func collectCounter(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != ErrorCounterName {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected Sum[int64], got %T", m.Data)
			}
			return sum.DataPoints
		}
	}
	return nil
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if cfg.Enabled {
		t.Error("expected export to be disabled by default")
	}
}

func TestErrorMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	em, err := NewErrorMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	expired := &apierror.ParsedError{Code: apierror.CodeAuthTokenExpired, Message: "Session expired", Status: 401}
	em.Record(ctx, "GET /assets", expired)
	em.Record(ctx, "GET /assets", expired)
	em.Record(ctx, "POST /inspections", &apierror.ParsedError{Code: apierror.CodeServiceUnavailable, Message: "down", Status: 503})

	points := collectCounter(t, reader)
	if len(points) != 2 {
		t.Fatalf("expected 2 data points, got %d", len(points))
	}

	for _, dp := range points {
		code, _ := dp.Attributes.Value(attribute.Key(AttrCode))
		retryable, _ := dp.Attributes.Value(attribute.Key(AttrRetryable))
		logout, _ := dp.Attributes.Value(attribute.Key(AttrLogout))
		switch code.AsString() {
		case string(apierror.CodeAuthTokenExpired):
			if dp.Value != 2 {
				t.Errorf("expected 2 expired-token failures, got %d", dp.Value)
			}
			if retryable.AsBool() || !logout.AsBool() {
				t.Errorf("unexpected policy attributes for expired token: retryable=%v logout=%v", retryable.AsBool(), logout.AsBool())
			}
		case string(apierror.CodeServiceUnavailable):
			if dp.Value != 1 {
				t.Errorf("expected 1 unavailable failure, got %d", dp.Value)
			}
			status, _ := dp.Attributes.Value(attribute.Key(AttrStatus))
			if status.AsInt64() != 503 {
				t.Errorf("expected status 503, got %d", status.AsInt64())
			}
			if !retryable.AsBool() {
				t.Error("expected 503 to be recorded as retryable")
			}
		default:
			t.Errorf("unexpected code attribute %q", code.AsString())
		}
	}
}

func TestErrorMetrics_NilSafe(t *testing.T) {
	var em *ErrorMetrics
	em.Record(context.Background(), "GET /", &apierror.ParsedError{Code: apierror.CodeUnknownError})

	em, err := NewErrorMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	em.Record(context.Background(), "GET /", nil)
}

func TestNewResource(t *testing.T) {
	res, err := newResource("inspectctl", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attrs := res.Set()
	if v, ok := attrs.Value("service.name"); !ok || v.AsString() != "inspectctl" {
		t.Errorf("expected service.name inspectctl, got %v", v.AsString())
	}
	if v, ok := attrs.Value("environment"); !ok || v.AsString() != "test" {
		t.Errorf("expected environment test, got %v", v.AsString())
	}
}

func TestMeter(t *testing.T) {
	if Meter("test") == nil {
		t.Error("expected non-nil meter")
	}
}

func TestInitMeter(t *testing.T) {
	cfg := &MeterConfig{
		Enabled:        true,
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Skipf("InitMeter failed: %v", err)
	}
	if mp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = mp.Shutdown(ctx)
	}
}
