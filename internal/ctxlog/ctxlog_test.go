package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/ctxlog"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := ctxlog.WithLogger(context.Background(), logger)
	got := ctxlog.FromContext(ctx)
	require.Same(t, logger, got)

	got.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	got := ctxlog.FromContext(context.Background())
	assert.Same(t, slog.Default(), got)
}
