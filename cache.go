// File: yamlhandler/cache.go
package yamlhandler

import "strings"

// The lookup cache is a pure optimization layered over the children maps:
// every Section memoizes successful path resolutions that started at it,
// keyed by the normalized sub-path. Correctness must be identical with the
// cache disabled (Loader.WithLookupCache(false)), which the tests rely on to
// separate cache bugs from tree bugs.

func (s *Section) cacheEnabled() bool {
	return s.root != nil && s.root.cacheEnabled
}

// invalidate removes every cache entry on s whose first path segment equals
// key. Called at every mutation site before the mutation commits.
func invalidate(s *Section, key string) {
	for cached := range s.cache {
		first := cached
		if i := strings.IndexRune(cached, s.separator); i >= 0 {
			first = cached[:i]
		}
		if first == key {
			delete(s.cache, cached)
		}
	}
}

// invalidateUp purges every cache entry that could resolve through the
// subtree rooted at s's child key: s's own entries under key, plus each
// ancestor's entries whose first segment leads down toward s. Lookups can
// start at any section, so ancestors above the mutation point may hold
// entries for the mutated subtree even when the mutation never walked them.
// Over-invalidation is harmless; a stale hit is not.
func invalidateUp(s *Section, key string) {
	invalidate(s, key)
	child := s
	for ancestor := s.parent; ancestor != nil; ancestor = ancestor.parent {
		invalidate(ancestor, child.name)
		child = ancestor
	}
}
