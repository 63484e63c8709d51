package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/fsutil"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
}

func TestFindFilesByExtension_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.hcl"))
	writeFile(t, filepath.Join(dir, "nested", "b.hcl"))
	writeFile(t, filepath.Join(dir, "ignore.txt"))

	files, err := fsutil.FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "nested", "b.hcl"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "only.hcl")
	writeFile(t, file)

	files, err := fsutil.FindFilesByExtension(file, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	_, err := fsutil.FindFilesByExtension(t.TempDir(), "")
	require.Error(t, err)

	_, err = fsutil.FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	require.Error(t, err)
}
