package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("output %q missing attribute", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want %q", record["msg"], "hello")
	}
	if record["key"] != "value" {
		t.Errorf("key = %v, want %q", record["key"], "value")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing at warn level")
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{2, slog.LevelDebug - 4},
		{5, slog.LevelDebug - 4},
		{-1, slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestHandler_MasksSecretAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("configured", "api_key", "supersecretvalue123", "region", "us-east-1")

	out := buf.String()
	if strings.Contains(out, "supersecretvalue123") {
		t.Errorf("output %q leaks secret value", out)
	}
	if !strings.Contains(out, "region=us-east-1") {
		t.Errorf("output %q missing non-secret attribute", out)
	}
}

func TestHandler_MasksTokenValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("detected", "value", "ghp_0123456789abcdefghij")

	if strings.Contains(buf.String(), "ghp_0123456789abcdefghij") {
		t.Errorf("output %q leaks token value", buf.String())
	}
}

func TestMultiHandler_DispatchesToAll(t *testing.T) {
	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	logger := slog.New(handler)

	logger.Info("fan out")

	if !strings.Contains(a.String(), "fan out") {
		t.Error("first handler missed record")
	}
	if !strings.Contains(b.String(), "fan out") {
		t.Error("second handler missed record")
	}
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(handler)

	logger.Info("info only")

	if a.Len() != 0 {
		t.Error("error-level handler received info record")
	}
	if !strings.Contains(b.String(), "info only") {
		t.Error("info-level handler missed record")
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	// Must not panic or write anywhere observable.
	logger.Error("discarded")
}

func TestFromContext_Default(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("FromContext() returned nil")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := ForTest(t)
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext() did not return the stored logger")
	}
}

func TestSupportsColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if supportsColor(nil, true) {
		t.Error("supportsColor() = true with NO_COLOR set")
	}
}

func TestSupportsColor_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if supportsColor(nil, true) {
		t.Error("supportsColor() = true with TERM=dumb")
	}
}

func TestSupportsColor_NotTTY(t *testing.T) {
	var buf bytes.Buffer
	if SupportsColor(&buf) {
		t.Error("SupportsColor() = true for a bytes.Buffer")
	}
}
