package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/cli"
)

func TestParse_PositionalPath(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"pipeline.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "pipeline.hcl", cfg.PipelinePath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_FlagsOverridePositional(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"-pipeline", "a.hcl", "b.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "a.hcl", cfg.PipelinePath)
}

func TestParse_Shorthand(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"-p", "a.hcl", "-watch", "-log-format", "text"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "a.hcl", cfg.PipelinePath)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"-log-format", "yaml", "p.hcl"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"-log-level", "verbose", "p.hcl"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_DotAndWatchConflict(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"-dot", "-watch", "p.hcl"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Contains(t, exitErr.Message, "mutually exclusive")
}
