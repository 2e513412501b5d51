package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Replaces Whole Blob", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "records.json")
		require.NoError(t, os.WriteFile(filename, []byte(`[{"id":"old"},{"id":"older"}]`), 0644))

		require.NoError(t, writeFileAtomic(filename, []byte(`[]`), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "a.json"), []byte("1"), 0644))
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "a.json"), []byte("2"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "stray temp file %s", e.Name())
		}
		assert.Len(t, entries, 1)
	})

	t.Run("Fails If Directory Missing", func(t *testing.T) {
		err := writeFileAtomic(filepath.Join(t.TempDir(), "missing", "a.json"), []byte("x"), 0644)
		assert.Error(t, err)
	})
}
