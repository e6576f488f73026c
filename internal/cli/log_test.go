package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestQuietLogger(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, log.DebugLevel)
	q := quietLogger(base)

	q.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote info: %q", buf.String())
	}
	q.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("quiet logger dropped warn: %q", buf.String())
	}
	if base.GetLevel() != log.DebugLevel {
		t.Errorf("base level changed to %v", base.GetLevel())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("rendered grid")

	if !strings.Contains(buf.String(), "rendered grid (") {
		t.Errorf("progress output = %q", buf.String())
	}
}
