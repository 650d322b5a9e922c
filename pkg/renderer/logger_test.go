package renderer

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Printf(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(observed).Sugar())

	logger.Printf("Pass %d completed in %s\n", 3, "1s")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "Pass 3 completed in 1s" {
		t.Errorf("Expected trailing newline to be trimmed, got %q", entries[0].Message)
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Errorf("Expected info level, got %v", entries[0].Level)
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Error("Expected a logger")
	}
}
