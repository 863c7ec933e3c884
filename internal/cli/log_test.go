package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("resolved query") }, true},
		{"debug filtered at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache write") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache write") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamps(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("fetched life list")
	line := buf.String()
	if !strings.Contains(line, "fetched life list") {
		t.Fatalf("missing message: %q", line)
	}
	// "15:04:05.00" renders as HH:MM:SS.hh; the colons are enough to tell a
	// timestamp was emitted.
	if strings.Count(line, ":") < 2 {
		t.Errorf("missing timestamp: %q", line)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}

	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext without an attached logger should fall back, not return nil")
	}
}
