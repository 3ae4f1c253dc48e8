package observe

import (
	"context"
	"errors"
	"testing"
)

// fakeSource is a fixed StatsSource for tests.
type fakeSource struct {
	requests int64
	hits     int64
	size     int
	weighted int64
	capacity int64
	manual   bool
}

func (s *fakeSource) Requests() int64             { return s.requests }
func (s *fakeSource) Hits() int64                 { return s.hits }
func (s *fakeSource) Size() int                   { return s.size }
func (s *fakeSource) WeightedSize() int64         { return s.weighted }
func (s *fakeSource) Capacity() int64             { return s.capacity }
func (s *fakeSource) IsCapacitySetManually() bool { return s.manual }

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServiceName: "test-service",
			Version:     "1.0.0",
			Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
			Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
			Logging:     LoggingConfig{Enabled: true, Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, ErrMissingServiceName},
		{"unknown tracing exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, ErrInvalidTracingExporter},
		{"sample pct above range", func(c *Config) { c.Tracing.SamplePct = 1.5 }, ErrInvalidSamplePct},
		{"sample pct negative", func(c *Config) { c.Tracing.SamplePct = -0.1 }, ErrInvalidSamplePct},
		{"unknown metrics exporter", func(c *Config) { c.Metrics.Exporter = "statsd" }, ErrInvalidMetricsExporter},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"disabled subsystems skip checks", func(c *Config) {
			c.Tracing = TracingConfig{Exporter: "zipkin", SamplePct: 7}
			c.Metrics = MetricsConfig{Exporter: "statsd"}
			c.Logging = LoggingConfig{Level: "trace"}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "observe-test"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatal("expected non-nil meter")
	}
	if _, ok := obs.Logger().(*noopLogger); !ok {
		t.Errorf("expected noop logger, got %T", obs.Logger())
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestNewObserver_Enabled(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
		Version:     "0.1.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "warn"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	}()

	if _, ok := obs.Logger().(*structuredLogger); !ok {
		t.Errorf("expected structured logger, got %T", obs.Logger())
	}

	reg, err := RegisterCacheMetrics(obs.Meter(), CacheMeta{Name: "users"}, &fakeSource{})
	if err != nil {
		t.Fatalf("RegisterCacheMetrics failed: %v", err)
	}
	_ = reg.Unregister()
}

func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("err = %v, want ErrMissingServiceName", err)
	}
}

func TestCacheMeta(t *testing.T) {
	tests := []struct {
		name     string
		meta     CacheMeta
		wantID   string
		wantSpan string
	}{
		{"with namespace", CacheMeta{Namespace: "auth", Name: "sessions"}, "auth.sessions", "cache.load.auth.sessions"},
		{"without namespace", CacheMeta{Name: "rows"}, "rows", "cache.load.rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.CacheID(); got != tt.wantID {
				t.Errorf("CacheID() = %q, want %q", got, tt.wantID)
			}
			if got := tt.meta.SpanName("load"); got != tt.wantSpan {
				t.Errorf("SpanName() = %q, want %q", got, tt.wantSpan)
			}
		})
	}

	if err := (CacheMeta{}).Validate(); !errors.Is(err, ErrMissingCacheName) {
		t.Errorf("Validate() = %v, want ErrMissingCacheName", err)
	}
}

func TestHitRatio(t *testing.T) {
	if got := HitRatio(&fakeSource{}); got != 0 {
		t.Errorf("HitRatio(no requests) = %v, want 0", got)
	}
	if got := HitRatio(&fakeSource{requests: 4, hits: 3}); got != 0.75 {
		t.Errorf("HitRatio = %v, want 0.75", got)
	}
}
