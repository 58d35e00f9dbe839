// File: yamlhandler/path.go
package yamlhandler

import (
	"fmt"
	"strings"
)

// SplitPath splits a path into its segments using the given separator.
// Consecutive, leading and trailing separators produce no segments, and
// segments made only of whitespace are discarded as well. A path that yields
// no segments is invalid.
func SplitPath(path string, separator rune) ([]string, error) {
	raw := strings.FieldsFunc(path, func(r rune) bool { return r == separator })

	segments := raw[:0]
	for _, segment := range raw {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		segments = append(segments, segment)
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return segments, nil
}

// joinPath is the inverse of SplitPath for already-clean segments.
func joinPath(segments []string, separator rune) string {
	return strings.Join(segments, string(separator))
}

// childPath builds the absolute path of a child node under a parent section.
func childPath(parent *Section, key string) string {
	if parent == nil || parent.path == "" {
		return key
	}
	return parent.path + string(parent.separator) + key
}
