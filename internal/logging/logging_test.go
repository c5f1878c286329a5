package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-curatorform/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := newWithWriter(config.LoggingConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("newWithWriter: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "form", "curator-information")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "curator-information") {
		t.Fatalf("expected warn record:\n%s", out)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := newWithWriter(config.LoggingConfig{
		LogDir:     dir,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, &buf)
	if err != nil {
		t.Fatalf("newWithWriter: %v", err)
	}
	logger.Info("to_file")

	data, err := os.ReadFile(filepath.Join(dir, defaultLogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to_file") {
		t.Fatalf("expected record in log file:\n%s", data)
	}
}

func TestNewLoggerRejectsBadRotation(t *testing.T) {
	if _, err := newWithWriter(config.LoggingConfig{LogDir: t.TempDir()}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected rotation config error")
	}
}
