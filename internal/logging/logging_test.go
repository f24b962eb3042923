package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(LevelWarn, &buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages written:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("missing messages:\n%s", out)
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled disagrees with level")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	root := NewWithOutput(LevelDebug, &buf)
	root.sink.now = func() time.Time { return time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC) }

	root.With("camera").Info("mode %s", "Orbit")

	if got, want := buf.String(), "09:30:00.000 [INFO] camera: mode Orbit\n"; got != want {
		t.Errorf("line = %q, want %q", got, want)
	}

	// Derived loggers share the level.
	root.SetLevel(LevelError)
	buf.Reset()
	root.With("sim").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("derived logger ignored parent level: %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.log")
	l, closer, err := OpenFile(path, LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] hello") {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo); err == nil {
		t.Error("OpenFile into missing directory succeeded")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger enabled for errors")
	}
}
