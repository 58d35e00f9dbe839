// File: yamlhandler/ordered.go
package yamlhandler

// OrderedMap is a string-keyed map that remembers insertion order. Section
// children and decoded documents are held in one so that dumping a
// configuration emits keys in the same order they were declared.
//
// Mutation is internal to the package; callers only observe ordered maps
// through read accessors, which makes Section.Nodes a safe live view.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key and whether the key is present.
// A present key may hold a nil value.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// put inserts or replaces a value. Replacing keeps the key's original
// position, matching how document mappings behave.
func (m *OrderedMap) put(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap) delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// each calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap) each(fn func(key string, value any) bool) {
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}
