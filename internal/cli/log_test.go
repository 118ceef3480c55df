package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("built chart", "records", 3) }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("reconciled", "enter", 3) }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("reconciled", "enter", 3) }, true},
		{log.WarnLevel, func(l *log.Logger) { l.Info("built chart") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("rendered outputs")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output %q does not start with a HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered 2 formats")

	out := buf.String()
	if !strings.Contains(out, "Rendered 2 formats (") || !strings.Contains(out, "s)") {
		t.Errorf("done() output = %q, want message followed by elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should fall back to log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), l))
	if got != l {
		t.Fatal("loggerFromContext() did not return the attached logger")
	}
	got.Info("cycle", "step", 1)
	if !strings.Contains(buf.String(), "step=1") {
		t.Errorf("output = %q, want step=1", buf.String())
	}
}
