// File: yamlhandler/cache_test.go
package yamlhandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCacheInvalidation tests that mutations are never shadowed by stale cache entries
func TestCacheInvalidation(t *testing.T) {
	t.Run("OverwriteVisibleAfterCachedLookup", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("server.port", 8080))

		val, _ := cfg.Get("server.port") // Primes the root cache
		assert.Equal(t, 8080, val)

		require.NoError(t, cfg.Set("server.port", 9090))
		val, _ = cfg.Get("server.port")
		assert.Equal(t, 9090, val)
	})

	t.Run("RemovalVisibleAfterCachedLookup", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("a.b", 1))

		assert.True(t, cfg.Contains("a.b"))
		require.NoError(t, cfg.Set("a.b", nil))
		assert.False(t, cfg.Contains("a.b"))
	})

	t.Run("AncestorCachePurgedOnDeepMutation", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("a.b.c", 1))

		// Prime caches at both the root and the intermediate section.
		val, _ := cfg.Get("a.b.c")
		assert.Equal(t, 1, val)
		sub := cfg.GetSection("a.b")
		require.NotNil(t, sub)
		val, _ = sub.Get("c")
		assert.Equal(t, 1, val)

		// Mutate through the subsection; the root's cached entry must go too.
		require.NoError(t, sub.Set("c", 2))
		val, _ = cfg.Get("a.b.c")
		assert.Equal(t, 2, val)
	})

	t.Run("SubtreeReplacementPurgesDescendantPaths", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("a.b.c", 1))
		val, _ := cfg.Get("a.b.c")
		assert.Equal(t, 1, val)

		require.NoError(t, cfg.Set("a", map[string]any{"other": 2}))
		_, ok := cfg.Get("a.b.c")
		assert.False(t, ok)
		val, _ = cfg.Get("a.other")
		assert.Equal(t, 2, val)
	})
}

// TestCacheTransparency tests that results are identical with the cache disabled
func TestCacheTransparency(t *testing.T) {
	run := func(cfg *Configuration) []string {
		var trace []string
		record := func(format string, args ...any) {
			trace = append(trace, fmt.Sprintf(format, args...))
		}

		require.NoError(t, cfg.Set("server.host", "localhost"))
		require.NoError(t, cfg.Set("server.port", 8080))
		val, ok := cfg.Get("server.host")
		record("host=%v/%v", val, ok)

		require.NoError(t, cfg.Set("server.host", "remote"))
		val, ok = cfg.Get("server.host")
		record("host=%v/%v", val, ok)

		require.NoError(t, cfg.Set("server", map[string]any{"port": 1}))
		val, ok = cfg.Get("server.host")
		record("host=%v/%v", val, ok)
		val, ok = cfg.Get("server.port")
		record("port=%v/%v", val, ok)

		require.NoError(t, cfg.Set("server.port", nil))
		record("contains=%v", cfg.Contains("server.port"))
		return trace
	}

	cached := run(NewConfiguration(NewLoader()))
	uncached := run(NewConfiguration(NewLoader().WithLookupCache(false)))
	assert.Equal(t, uncached, cached)
}
