package log_test

import (
	"context"
	"testing"

	"weekly-task-report/pkg/log"
)

func TestTraceID(t *testing.T) {
	if got := log.TraceIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}

	ctx := log.WithTraceID(context.Background(), "run-1")
	if got := log.TraceIDFromContext(ctx); got != "run-1" {
		t.Errorf("expected run-1, got %q", got)
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		cfg  log.ZapConfig
	}{
		{name: "Development console", cfg: log.ZapConfig{Level: "debug", Mode: "development", Encoding: "console", ColorEnabled: true}},
		{name: "Production json", cfg: log.ZapConfig{Level: "info", Mode: "production", Encoding: "json"}},
		{name: "Unknown level and encoding", cfg: log.ZapConfig{Level: "loud", Encoding: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := log.Init(tt.cfg)
			if l == nil {
				t.Fatal("expected logger")
			}
			ctx := log.WithTraceID(context.Background(), "trace")
			l.Debugf(ctx, "debug %d", 1)
			l.Info(ctx, "info")
			l.Warnf(ctx, "warn %s", "x")
		})
	}
}
