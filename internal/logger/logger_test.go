package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{name: "debug level", level: "debug", want: "debug"},
		{name: "warn level", level: "warn", want: "warning"},
		{name: "uppercase level", level: "DEBUG", want: "debug"},
		{name: "invalid level defaults to info", level: "invalid", want: "info"},
		{name: "empty level defaults to info", level: "", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, &bytes.Buffer{})
			require.NotNil(t, log)
			assert.Equal(t, tt.want, log.Level())
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	log := New("info", nil)
	require.NotNil(t, log)
	require.NotNil(t, log.log)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() {
		log.Error().Str("key", "value").Msg("dropped")
	})
}

func TestEntry_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("info", buf)

	log.Info().
		Str("command", "test1").
		Strs("args", []string{"name1", "name2"}).
		Int("count", 42).
		Bool("cached", true).
		Dur("took", 1500*time.Microsecond).
		Err(errors.New("boom")).
		Msg("resolved target")

	output := buf.String()
	assert.Contains(t, output, "resolved target")
	assert.Contains(t, output, "command=test1")
	assert.Contains(t, output, "args=\"name1,name2\"")
	assert.Contains(t, output, "count=42")
	assert.Contains(t, output, "cached=true")
	assert.Contains(t, output, "took=1.5")
	assert.Contains(t, output, "error=boom")
}

func TestEntry_Err_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("error", buf)

	log.Error().Err(nil).Msg("no error")

	assert.Contains(t, buf.String(), "no error")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		emit      func(*Logger)
		shouldLog bool
	}{
		{
			name:      "debug message with debug level",
			logLevel:  "debug",
			emit:      func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog: true,
		},
		{
			name:      "debug message with info level",
			logLevel:  "info",
			emit:      func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog: false,
		},
		{
			name:      "info message with warn level",
			logLevel:  "warn",
			emit:      func(l *Logger) { l.Info().Msg("info") },
			shouldLog: false,
		},
		{
			name:      "warn message with warn level",
			logLevel:  "warn",
			emit:      func(l *Logger) { l.Warn().Msg("warn") },
			shouldLog: true,
		},
		{
			name:      "error message with error level",
			logLevel:  "error",
			emit:      func(l *Logger) { l.Error().Msg("error") },
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.emit(New(tt.logLevel, buf))

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLogger_LevelLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("debug", buf)

	log.Warn().Msg("careful")

	assert.Contains(t, buf.String(), "level=warning")
	assert.NotContains(t, buf.String(), "level=info")
}
