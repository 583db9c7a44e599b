package multihost

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
)

func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
}

func TestKitLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := NewKitLogger(log.NewLogfmtLogger(&buf))

	logger.Warn("endpoint registered", "endpoint", "http://example.com")

	line := buf.String()
	for _, want := range []string{"level=warn", `msg="endpoint registered"`, "endpoint=http://example.com", "component=multihost"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in log line %q", want, line)
		}
	}
}

func TestKitLoggerOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewKitLogger(log.NewLogfmtLogger(&buf))

	logger.Info("odd", "dangling")

	if !strings.Contains(buf.String(), "dangling=") {
		t.Errorf("expected dangling key to be logged, got %q", buf.String())
	}
}

func TestNewKitLoggerNil(t *testing.T) {
	logger := NewKitLogger(nil)
	logger.Error("discarded")
}

func TestWarnLogGatedByDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewKitLogger(log.NewLogfmtLogger(&buf))

	c := &Client{logger: logger, debug: &DebugConfig{}}
	c.warnLog("request failed", "error", "boom")
	if buf.Len() != 0 {
		t.Errorf("expected no output with debug disabled, got %q", buf.String())
	}

	c.debug.Enabled = true
	c.warnLog("request failed", "error", "boom")
	if !strings.Contains(buf.String(), "level=warn") || !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected warn line, got %q", buf.String())
	}

	buf.Reset()
	c.debug = nil
	c.warnLog("request failed")
	if buf.Len() != 0 {
		t.Errorf("expected no output without debug config, got %q", buf.String())
	}
}
