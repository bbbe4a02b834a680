package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Str("operation", "fetch").Msg("visible")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["message"])
	assert.Equal(t, "fetch", rec["operation"])
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "citytable.log")
		res := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
		t.Cleanup(func() { _ = res.Close() })

		assert.True(t, res.UsingFile)
		assert.False(t, res.FallbackUsed)
		res.Logger.Info().Msg("hello")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("file without path falls back", func(t *testing.T) {
		res := NewLoggerWithPath(Config{Output: OutputFile})
		assert.False(t, res.UsingFile)
		assert.True(t, res.FallbackUsed)
		assert.NotEmpty(t, res.FallbackReason)
		assert.NoError(t, res.Close())
	})

	t.Run("stderr", func(t *testing.T) {
		res := NewLoggerWithPath(Config{Output: OutputStderr})
		assert.False(t, res.UsingFile)
		assert.False(t, res.FallbackUsed)
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)

	ctx := base.WithContext(context.Background())
	ctx = ContextWithTraceID(ctx, "01TESTTRACE")

	FromContext(ctx).Info().Msg("traced")
	assert.Contains(t, buf.String(), `"trace_id":"01TESTTRACE"`)

	// No logger attached: must not panic and must not write.
	FromContext(context.Background()).Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Format: FormatJSON}, &buf), "tui")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"tui"`)
}
