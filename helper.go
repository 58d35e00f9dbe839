// File: yamlhandler/helper.go
package yamlhandler

import "sort"

// convertNodes merges the entries of src into holder's children, applying
// the load-time conversion rules: dotted keys are exploded into nested
// sections, NullValue becomes an explicit null, maps and sections are copied
// into fresh child sections, and every converted section is offered to the
// serializer registry for decoding.
func convertNodes(holder *Section, src *OrderedMap) error {
	var convErr error
	src.each(func(key string, value any) bool {
		segment, exploded, err := explodeKey(holder.separator, key, value)
		if err != nil {
			convErr = err
			return false
		}
		converted, err := convertValue(holder, segment, exploded)
		if err != nil {
			convErr = err
			return false
		}
		invalidateUp(holder, segment)
		holder.nodes.put(segment, converted)
		return true
	})
	return convErr
}

func convertValue(holder *Section, key string, value any) (any, error) {
	if value == NullValue {
		return nil, nil
	}
	if section, isSection := value.(*Section); isSection {
		value = section.nodes
	}

	var nested *OrderedMap
	switch m := value.(type) {
	case *OrderedMap:
		nested = m
	case map[string]any:
		nested = orderedFromMap(m)
	default:
		return value, nil
	}

	child := newSection(key, holder, holder.root)
	if err := convertNodes(child, nested); err != nil {
		return nil, err
	}
	if obj, ok, err := holder.root.registry.sniff(child); err != nil {
		return nil, err
	} else if ok {
		return obj, nil
	}
	return child, nil
}

// explodeKey turns a key containing separators into the key's first segment
// plus a value wrapped in nested single-entry maps, one level per remaining
// segment: ("a.b.c", v) becomes ("a", {b: {c: v}}).
func explodeKey(separator rune, key string, value any) (string, any, error) {
	segments, err := SplitPath(key, separator)
	if err != nil {
		return "", nil, err
	}
	if len(segments) == 1 {
		return segments[0], value, nil
	}
	for i := len(segments) - 1; i > 0; i-- {
		wrapper := newOrderedMap()
		wrapper.put(segments[i], value)
		value = wrapper
	}
	return segments[0], value, nil
}

// sectionToOrdered flattens a section into an ordered map of plain values.
// With serialize set, typed objects are re-encoded through the registry;
// without it they are passed through untouched (the shape serializer
// sniffing needs).
func sectionToOrdered(s *Section, serialize bool) (*OrderedMap, error) {
	out := newOrderedMap()
	var convErr error
	s.nodes.each(func(key string, value any) bool {
		if child, isSection := value.(*Section); isSection {
			converted, err := sectionToOrdered(child, serialize)
			if err != nil {
				convErr = err
				return false
			}
			out.put(key, converted)
			return true
		}
		if serialize {
			serialized, ok, err := s.root.registry.trySerialize(value)
			if err != nil {
				convErr = err
				return false
			}
			if ok {
				out.put(key, serialized)
				return true
			}
		}
		out.put(key, value)
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}

// orderedToPlain converts an ordered map tree into plain nested
// map[string]any values, descending into slices as well.
func orderedToPlain(m *OrderedMap) map[string]any {
	out := make(map[string]any, m.Len())
	m.each(func(key string, value any) bool {
		out[key] = plainValue(value)
		return true
	})
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case *OrderedMap:
		return orderedToPlain(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = plainValue(item)
		}
		return items
	}
	return value
}

// plainNodes is the serializer-facing view of a section: plain nested maps,
// with typed objects left as they are.
func plainNodes(s *Section) map[string]any {
	nodes, _ := sectionToOrdered(s, false) // serialize=false cannot fail
	return orderedToPlain(nodes)
}

// orderedFromMap copies a plain map into an ordered map. Go maps carry no
// order, so keys are inserted sorted to keep conversion deterministic.
func orderedFromMap(m map[string]any) *OrderedMap {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := newOrderedMap()
	for _, key := range keys {
		out.put(key, m[key])
	}
	return out
}
