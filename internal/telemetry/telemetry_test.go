package telemetry

import (
	"context"
	"strings"
	"testing"
)

func TestTracerWithoutSetupIsNoop(t *testing.T) {
	_, span := Tracer("battle").Start(context.Background(), "battle.start")
	defer span.End()

	if span.IsRecording() {
		t.Error("span should not record before Setup")
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "noop")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("noop span should have an invalid span context")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "AlwaysOnSampler"},
		{5, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		got := Sampler(tt.ratio).Description()
		if !strings.Contains(got, tt.want) {
			t.Errorf("Sampler(%v) = %s, want it to contain %s", tt.ratio, got, tt.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background())
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" && kv.Value.AsString() == serviceName {
			found = true
		}
	}
	if !found {
		t.Error("service.name missing from resource")
	}
}
