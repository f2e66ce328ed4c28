package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("%s: unexpected error: %v", env, err)
		}
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging-typo"); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestNewLogger_InvalidLevelOverride(t *testing.T) {
	if _, err := NewLogger("local", "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("expected the stored logger back")
	}
}

func TestFromContext_MissingLoggerFallsBackToNop(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("expected a usable no-op logger, got nil")
	}
}
