package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New("warn", &buf)

		log.Info("hidden")
		log.WithField("command", "setLocation").Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message should be filtered, got %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "command=setLocation") {
			t.Errorf("warn message with field expected, got %q", out)
		}
	})

	t.Run("discard writes nothing", func(t *testing.T) {
		log := Discard()
		if log.IsLevelEnabled(logrus.InfoLevel) {
			t.Error("Discard logger should not enable info")
		}
	})
}
