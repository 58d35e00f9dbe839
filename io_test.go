// File: yamlhandler/io_test.go
package yamlhandler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSave tests append-only writing of configurations
func TestSave(t *testing.T) {
	t.Run("CreatesFileAndParents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "config.yml")
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("key", "value"))

		require.NoError(t, cfg.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		expected, err := cfg.Dump()
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))
	})

	t.Run("AppendsNeverTruncates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("key", "value"))

		require.NoError(t, cfg.Save(path))
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, cfg.Save(path))
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Len(t, second, 2*len(first))
		assert.Equal(t, string(first)+string(first), string(second))
	})

	t.Run("PreservesForeignContent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("# hand-written preamble\n"), 0644))

		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("key", "value"))
		require.NoError(t, cfg.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# hand-written preamble\n"))
		assert.Contains(t, string(data), "key: value")
	})

	t.Run("DirectoryRejected", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		err := cfg.Save(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}

// TestSaveBack tests writing back to the load path
func TestSaveBack(t *testing.T) {
	t.Run("AppendsToSourceFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("key: value\n"), 0644))

		cfg, err := NewLoader().LoadFile(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Set("extra", 1))
		require.NoError(t, cfg.SaveBack())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "key: value\n"))
		assert.Contains(t, string(data), "extra: 1")
	})

	t.Run("FailsWithoutSourceFile", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		err := cfg.SaveBack()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not loaded from a file")
	})
}
