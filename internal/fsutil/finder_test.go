package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindFiles(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.hcl"))
	writeFile(t, filepath.Join(dir, "a.yaml"))
	writeFile(t, filepath.Join(dir, "nested", "c.YML"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	explicit := filepath.Join(dir, "notes.txt")

	// --- Act ---
	files, err := FindFiles([]string{dir, explicit, filepath.Join(dir, "b.hcl")}, ".hcl", ".yaml", ".yml")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.YML"),
		explicit,
	}, files)
}

func TestFindFilesMissingPath(t *testing.T) {
	_, err := FindFiles([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	require.Error(t, err)
}

func TestFindFilesPanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles([]string{"."}) })
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("x.HCL", ".hcl"))
	assert.False(t, HasExtension("x.hcl.bak", ".hcl"))
	assert.False(t, HasExtension("hcl", ".hcl"))
}
