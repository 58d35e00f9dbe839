// File: yamlhandler/toml.go
package yamlhandler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLCodec is an alternate document codec for TOML sources. Key declaration
// order is recovered from the decoder metadata. TOML has no comment
// round-tripping here and no null value: Decode never reports comments,
// Encode ignores the comment map and drops explicit nulls.
type TOMLCodec struct{}

// Decode parses TOML text into an ordered node tree.
func (TOMLCodec) Decode(data []byte, opts CodecOptions) (*OrderedMap, map[string]Comment, error) {
	raw := make(map[string]any)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	out := newOrderedMap()
	for _, key := range md.Keys() {
		insertTOMLKey(out, key, raw)
	}
	fillTOMLMissing(out, raw)
	return out, nil, nil
}

// insertTOMLKey places one metadata key into the ordered tree, creating
// intermediate ordered maps for tables along the way.
func insertTOMLKey(out *OrderedMap, key toml.Key, raw map[string]any) {
	current := out
	currentRaw := raw

	for i, segment := range key {
		value, ok := currentRaw[segment]
		if !ok {
			return
		}
		last := i == len(key)-1

		if table, isTable := value.(map[string]any); isTable {
			child, exists := current.Get(segment)
			childMap, isMap := child.(*OrderedMap)
			if !exists || !isMap {
				childMap = newOrderedMap()
				current.put(segment, childMap)
			}
			current = childMap
			currentRaw = table
			continue
		}

		if last {
			current.put(segment, tomlValue(value))
		}
		return
	}
}

// fillTOMLMissing adds any raw entries the metadata walk did not cover, such
// as inline table members, in sorted order.
func fillTOMLMissing(out *OrderedMap, raw map[string]any) {
	orderedFromMap(raw).each(func(key string, value any) bool {
		existing, ok := out.Get(key)
		if table, isTable := value.(map[string]any); isTable {
			childMap, isMap := existing.(*OrderedMap)
			if !ok || !isMap {
				childMap = newOrderedMap()
				out.put(key, childMap)
			}
			fillTOMLMissing(childMap, table)
			return true
		}
		if !ok {
			out.put(key, tomlValue(value))
		}
		return true
	})
}

func tomlValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := newOrderedMap()
		orderedFromMap(v).each(func(key string, item any) bool {
			out.put(key, tomlValue(item))
			return true
		})
		return out
	case []map[string]any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = tomlValue(item)
		}
		return items
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = tomlValue(item)
		}
		return items
	}
	return value
}

// Encode renders an ordered node tree to TOML.
func (TOMLCodec) Encode(nodes *OrderedMap, _ map[string]Comment, opts CodecOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = strings.Repeat(" ", opts.Indent)
	if err := enc.Encode(tomlPlain(nodes)); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// tomlPlain converts the ordered tree to plain maps, dropping explicit nulls
// since TOML cannot represent them.
func tomlPlain(m *OrderedMap) map[string]any {
	out := make(map[string]any, m.Len())
	m.each(func(key string, value any) bool {
		if value == nil {
			return true
		}
		out[key] = tomlPlainValue(value)
		return true
	})
	return out
}

func tomlPlainValue(value any) any {
	switch v := value.(type) {
	case *OrderedMap:
		return tomlPlain(v)
	case map[string]any:
		return tomlPlain(orderedFromMap(v))
	case []any:
		items := make([]any, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			items = append(items, tomlPlainValue(item))
		}
		return items
	}
	return value
}
