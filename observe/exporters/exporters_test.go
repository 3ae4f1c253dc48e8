package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// TestExporter_InvalidName verifies unknown exporter names return ErrUnknownExporter.
func TestExporter_InvalidName(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "invalid"); !errors.Is(err, ErrUnknownExporter) {
		t.Errorf("tracing: err = %v, want ErrUnknownExporter", err)
	}
	if _, err := NewMetricsReader(context.Background(), "badvalue"); !errors.Is(err, ErrUnknownExporter) {
		t.Errorf("metrics: err = %v, want ErrUnknownExporter", err)
	}
}

// TestExporter_StdoutTracing verifies stdout tracing exporter honors WithWriter.
func TestExporter_StdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTracingExporter(context.Background(), "stdout", WithWriter(&buf))
	if err != nil {
		t.Fatalf("failed to create stdout tracing exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

// TestExporter_StdoutMetrics verifies stdout metrics reader.
func TestExporter_StdoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	reader, err := NewMetricsReader(context.Background(), "stdout", WithWriter(&buf))
	if err != nil {
		t.Fatalf("failed to create stdout metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
	_ = reader.Shutdown(context.Background())
}

// TestExporter_MissingEndpoint verifies OTLP and Jaeger fail without endpoint env.
func TestExporter_MissingEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")

	tests := []struct {
		name string
		fn   func() error
	}{
		{"otlp tracing", func() error {
			_, err := NewTracingExporter(context.Background(), "otlp")
			return err
		}},
		{"jaeger tracing", func() error {
			_, err := NewTracingExporter(context.Background(), "jaeger")
			return err
		}},
		{"otlp metrics", func() error {
			_, err := NewMetricsReader(context.Background(), "otlp")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrEndpointNotConfigured) {
				t.Errorf("err = %v, want ErrEndpointNotConfigured", err)
			}
		})
	}
}

// TestExporter_OtlpWithEndpoint verifies OTLP with endpoint env succeeds.
func TestExporter_OtlpWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")

	exp, err := NewTracingExporter(context.Background(), "otlp")
	if err != nil {
		t.Fatalf("failed to create OTLP exporter with endpoint: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
	_ = exp.Shutdown(context.Background())
}

// TestExporter_PrometheusRegistersOnRegistry verifies the prometheus reader
// registers its collector on the supplied registry.
func TestExporter_PrometheusRegistersOnRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	reader, err := NewMetricsReader(context.Background(), "prometheus", WithRegisterer(reg))
	if err != nil {
		t.Fatalf("failed to create Prometheus reader: %v", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	counter, err := mp.Meter("test").Int64Counter("cache.test")
	if err != nil {
		t.Fatalf("failed to create counter: %v", err)
	}
	counter.Add(context.Background(), 1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected metric families on the supplied registry")
	}
}

// TestExporter_None verifies 'none' returns usable no-op exporters.
func TestExporter_None(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "none")
	if err != nil || exp == nil {
		t.Fatalf("none tracing = (%v, %v), want non-nil exporter", exp, err)
	}
	reader, err := NewMetricsReader(context.Background(), "")
	if err != nil || reader == nil {
		t.Fatalf("empty metrics = (%v, %v), want non-nil reader", reader, err)
	}
}
