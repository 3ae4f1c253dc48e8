package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	err := errors.New("boom")

	if r := Healthy("ok"); r.Status != StatusHealthy || r.Message != "ok" || r.Timestamp.IsZero() {
		t.Errorf("Healthy() = %+v", r)
	}
	if r := Degraded("slow"); r.Status != StatusDegraded || r.Message != "slow" {
		t.Errorf("Degraded() = %+v", r)
	}
	if r := Unhealthy("down", err); r.Status != StatusUnhealthy || !errors.Is(r.Error, err) {
		t.Errorf("Unhealthy() = %+v", r)
	}
}

func TestResult_WithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"size": 3})
	if r.Details["size"] != 3 {
		t.Errorf("Details[size] = %v, want 3", r.Details["size"])
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("custom", func(ctx context.Context) Result {
		return Degraded("meh")
	})

	if c.Name() != "custom" {
		t.Errorf("Name() = %q, want custom", c.Name())
	}
	if got := c.Check(context.Background()); got.Status != StatusDegraded {
		t.Errorf("Check().Status = %v, want degraded", got.Status)
	}
}
