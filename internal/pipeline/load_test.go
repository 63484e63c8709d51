package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/pipeline"
)

func TestLoad_MergesFilesAcrossDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inputs.hcl"), []byte(`
input "x" {
  value = 3
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "derived.hcl"), []byte(`
derive "y" {
  expr = x + 1
}
`), 0o644))

	spec, err := pipeline.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "y"}, spec.Names())

	// Cross-file references must resolve.
	_, err = pipeline.Build(context.Background(), spec)
	require.NoError(t, err)
}

func TestLoad_SingleFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "p.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`
input "x" {
  value = 1
}
`), 0o644))

	spec, err := pipeline.Load(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, spec.Names())
}

func TestLoad_NoFiles(t *testing.T) {
	_, err := pipeline.Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl files")
}

func TestParse_DuplicateNames(t *testing.T) {
	_, err := pipeline.Parse("test.hcl", []byte(`
input "x" {
  value = 1
}

derive "x" {
  expr = 2
}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate node definition "x"`)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := pipeline.Parse("test.hcl", []byte(`input "x" {`))
	require.Error(t, err)
}
