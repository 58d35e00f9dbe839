// File: yamlhandler/decode.go
package yamlhandler

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at basePath into the target struct or map. Typed
// objects are re-encoded through the serializer registry first, so their
// fields decode like any other node. An empty basePath scans the whole tree.
// The target must be a non-nil pointer; fields map via the "yaml" struct tag.
func (c *Configuration) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	data, err := c.AsMap()
	if err != nil {
		return err
	}

	sectionData := navigateToPath(data, basePath, c.separator)
	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			sectionMap = make(map[string]any) // Empty or missing section
		} else {
			return fmt.Errorf("path %q refers to non-map value (type %T)", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// navigateToPath traverses a nested map to reach the specified path.
func navigateToPath(nested map[string]any, path string, separator rune) any {
	if path == "" {
		return nested
	}
	segments, err := SplitPath(path, separator)
	if err != nil {
		return nil
	}

	current := any(nested)
	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}
