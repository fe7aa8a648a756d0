package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewEmitsJSONByDefault(t *testing.T) {
	out := captureStdout(t, func() {
		log := New(Config{Level: "info", Format: "json"})
		log.Info().Msg("replay started")
	})

	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected a JSON line, got %q", out)
	}
	if !strings.Contains(out, `"message":"replay started"`) {
		t.Fatalf("expected the message field, got %q", out)
	}
}

func TestNewHonorsLevel(t *testing.T) {
	out := captureStdout(t, func() {
		log := New(Config{Level: "error", Format: "json"})
		log.Info().Msg("should be dropped")
	})

	if strings.TrimSpace(out) != "" {
		t.Fatalf("info line leaked through an error-level logger: %q", out)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}
	return buf.String()
}
