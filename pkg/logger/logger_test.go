package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"iggallery/pkg/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{"info level", &config.LoggingConfig{Level: "info"}, false},
		{"debug level", &config.LoggingConfig{Level: "debug"}, false},
		{"invalid level", &config.LoggingConfig{Level: "invalid"}, true},
		{"file output", &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "run.log")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	l, err := New(&config.LoggingConfig{Level: "info", File: path})
	require.NoError(t, err)
	l.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"", zerolog.InfoLevel, true},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFieldChaining(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	l.WithField("component", "fetcher").
		WithFields(map[string]interface{}{"records": 5, "ok": true}).
		InfoWithFields("fetched media", map[string]interface{}{"duration": 2 * time.Second})

	out := buf.String()
	assert.Contains(t, out, `"component":"fetcher"`)
	assert.Contains(t, out, `"records":5`)
	assert.Contains(t, out, `"ok":true`)
	assert.Contains(t, out, `"app":"iggallery"`)
	assert.Contains(t, out, "fetched media")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter(&buf, zerolog.DebugLevel)

	_ = parent.WithField("child", "yes")
	parent.Info("parent message")

	assert.NotContains(t, buf.String(), "child")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	assert.Same(t, l, l.WithError(nil))

	l.WithError(errors.New("disk full")).Error("write failed")
	assert.Contains(t, buf.String(), `"error":"disk full"`)
}

func TestLogRequest(t *testing.T) {
	tl := NewTestLogger()

	LogRequest(tl, "GET", "https://graph.instagram.com/v24.0/1/media", 200, time.Millisecond)
	LogRequest(tl, "GET", "https://graph.instagram.com/v24.0/1/media", 400, time.Millisecond)
	LogRequest(tl, "GET", "https://graph.instagram.com/v24.0/1/media", 503, time.Millisecond)

	assert.Len(t, tl.GetMessagesByLevel("DEBUG"), 1)
	assert.Len(t, tl.GetMessagesByLevel("WARN"), 1)
	assert.Len(t, tl.GetMessagesByLevel("ERROR"), 1)
}

func TestTestLogger(t *testing.T) {
	tl := NewTestLogger()

	tl.WithField("stage", "persist").WithError(errors.New("boom")).Error("stage failed")
	tl.Info("plain")

	msgs := tl.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "ERROR", msgs[0].Level)
	assert.Equal(t, "persist", msgs[0].Fields["stage"])
	assert.Equal(t, "boom", msgs[0].Error)
	assert.True(t, tl.HasError())
	assert.True(t, tl.HasMessage("plain"))
	assert.True(t, tl.Contains("stage failed"))

	tl.Clear()
	assert.Empty(t, tl.GetMessages())
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "error"}))
	assert.NotNil(t, GetLogger())

	tl := NewTestLogger()
	SetLogger(tl)
	defer SetLogger(nil)

	Info("via global")
	WithField("k", "v").Warn("with field")
	assert.True(t, tl.HasMessage("via global"))
	assert.True(t, tl.HasMessage("with field"))
}
