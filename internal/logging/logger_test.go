package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Output: &buf, Enabled: true})

	logger.Debug("pipe wiring", "stage", "vmaf")
	logger.Info("probe complete")

	out := buf.String()
	if !strings.Contains(out, "pipe wiring") {
		t.Errorf("Expected debug message in output, got: %s", out)
	}
	if !strings.Contains(out, "probe complete") {
		t.Errorf("Expected info message in output, got: %s", out)
	}
}

func TestNewInfoLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf, Enabled: true})

	logger.Debug("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Errorf("Debug message leaked at info level: %s", buf.String())
	}
}

func TestNewDisabledDiscardsEverything(t *testing.T) {
	logger := New(Config{Enabled: false})
	// Must not panic and must not touch any writer.
	logger.Debug("discarded")
	logger.Error("discarded too")
}

func TestInitReplacesGlobal(t *testing.T) {
	prev := Global()
	defer SetGlobal(prev)

	var buf bytes.Buffer
	Init(slog.LevelDebug, &buf)

	Global().Debug("verbose detail")
	if !strings.Contains(buf.String(), "verbose detail") {
		t.Errorf("Expected global logger to write debug output, got: %s", buf.String())
	}
}
