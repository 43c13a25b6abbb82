package filestorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644))
}

func TestNewLocalStorageCreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	writeFile(t, base, "cert.pdf")

	require.NoError(t, ls.DeleteFile("uploaded_files/cert.pdf"))
	assert.NoFileExists(t, filepath.Join(base, "cert.pdf"))

	// a second delete of the same path is not an error
	require.NoError(t, ls.DeleteFile("uploaded_files/cert.pdf"))
	require.NoError(t, ls.DeleteFile(""))
}

func TestListOrphans(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	writeFile(t, base, "kept.pdf")
	writeFile(t, base, "orphan1.png")
	writeFile(t, base, "orphan2.pdf")

	orphans, err := ls.ListOrphans([]string{"uploaded_files/kept.pdf"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"orphan1.png", "orphan2.pdf"}, orphans)
}

func TestListOrphansEmptyDirectory(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	orphans, err := ls.ListOrphans(nil)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}
