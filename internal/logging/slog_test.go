package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, true)

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("expected debug message to be logged in debug mode")
	}
}

func TestSetup_InfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, false)

	logger.Debug("debug message")
	if strings.Contains(buf.String(), "debug message") {
		t.Error("debug message must be suppressed at info level")
	}

	logger.Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Error("expected info message to be logged")
	}
}

func TestErr_NilSafe(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("nil error must produce an empty attribute, got key %q", attr.Key)
	}
}

func TestAttributeConstructors(t *testing.T) {
	if got := Action("create_document"); got.Key != KeyAction || got.Value.String() != "create_document" {
		t.Errorf("unexpected action attr: %v", got)
	}
	if got := Document("doc-1"); got.Key != KeyDocument || got.Value.String() != "doc-1" {
		t.Errorf("unexpected document attr: %v", got)
	}
	if got := Status(StatusSuccess); got.Key != KeyStatus || got.Value.String() != StatusSuccess {
		t.Errorf("unexpected status attr: %v", got)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "<empty>"},
		{"abc", "[token:3 chars]"},
		{"ya29.veryverysecret", "[token:19 chars]"},
	}

	for _, tt := range tests {
		if got := SanitizeToken(tt.token); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}

	// The token itself must never appear in the sanitized form
	if strings.Contains(SanitizeToken("supersecret"), "supersecret") {
		t.Error("sanitized token leaks the secret")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adapter := NewSlogAdapter(base)
	adapter.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected adapter output: %s", out)
	}

	if adapter.Logger() != base {
		t.Error("Logger() must return the wrapped logger")
	}
}

func TestNewSlogAdapter_NilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter.Logger() == nil {
		t.Error("expected non-nil underlying logger")
	}
}
