package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "greenpulse.log")

	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)
	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())

	result.Logger.Info().Str("building", "HQ").Msg("assessed")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"building":"HQ"`)
}

func TestNewLoggerWithPath_FallsBackToStderr(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestNewLoggerWithPath_BadLevelDefaultsToInfo(t *testing.T) {
	l := NewLogger(Config{Level: "shouting"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := ComponentLogger(zerolog.New(&buf), "engine")

	ctx := base.WithContext(context.Background())
	ctx = ContextWithTraceID(ctx, "trace-1")

	FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"engine"`)
	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)

	// No logger stored: disabled, never nil.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestTraceIDs(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	id := GetOrGenerateTraceID(context.Background())
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, id, NewTraceID())
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "permission denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "permission denied")
}
