// File: yamlhandler/section.go
package yamlhandler

import "reflect"

// NullValue marks a node that exists but holds no value. Passing it to Set
// stores an explicit null, as opposed to passing nil which removes the node.
// GetNullable returns it for nodes in that state.
var NullValue any = nullSentinel{}

type nullSentinel struct{}

// Section is one node of the configuration tree. Its children are kept in
// insertion order and may be scalars, slices, nested sections, or objects
// produced by a registered Serializer.
//
// Sections are not safe for concurrent use; a Configuration and every Section
// reachable from it must be confined to one goroutine or synchronized
// externally around whole read-modify-write sequences.
type Section struct {
	name      string
	path      string
	separator rune
	parent    *Section
	root      *Configuration
	nodes     *OrderedMap
	cache     map[string]any
}

func newSection(name string, parent *Section, root *Configuration) *Section {
	s := &Section{
		name:      name,
		separator: root.separator,
		parent:    parent,
		root:      root,
		nodes:     newOrderedMap(),
		cache:     make(map[string]any),
	}
	s.path = childPath(parent, name)
	return s
}

func newRootSection(root *Configuration) *Section {
	return &Section{
		separator: root.separator,
		root:      root,
		nodes:     newOrderedMap(),
		cache:     make(map[string]any),
	}
}

// Name returns the last path segment of this section, or "" for the root.
func (s *Section) Name() string { return s.name }

// Path returns the absolute path of this section, or "" for the root.
func (s *Section) Path() string { return s.path }

// Parent returns the section this one is nested in, or nil for the root.
func (s *Section) Parent() *Section { return s.parent }

// Root returns the Configuration owning this section's tree.
func (s *Section) Root() *Configuration { return s.root }

// Separator returns the path separator, fixed for the tree's lifetime.
func (s *Section) Separator() rune { return s.separator }

// Nodes returns a live, read-only ordered view of this section's direct
// children. Nested sections stay *Section values.
func (s *Section) Nodes() *OrderedMap { return s.nodes }

// lookup resolves a path from this section, descending only through existing
// sections. The second result reports whether the final node exists; an
// existing node may hold nil (an explicit null). Successful resolutions are
// cached on this section under the normalized path.
func (s *Section) lookup(path string) (any, bool) {
	segments, err := SplitPath(path, s.separator)
	if err != nil {
		return nil, false
	}
	full := joinPath(segments, s.separator)

	if s.cacheEnabled() {
		if v, ok := s.cache[full]; ok {
			return v, true
		}
	}

	current := s
	for i, segment := range segments {
		value, ok := current.nodes.Get(segment)
		if i < len(segments)-1 {
			child, isSection := value.(*Section)
			if !isSection {
				// Cannot descend through a scalar.
				return nil, false
			}
			current = child
			continue
		}
		if !ok {
			return nil, false
		}
		if s.cacheEnabled() {
			s.cache[full] = value
		}
		return value, true
	}
	return nil, false
}

// Get returns the value at path. The boolean is false when the path does not
// resolve, when the path is malformed, or when the node holds an explicit
// null; use GetNullable to tell the latter apart.
func (s *Section) Get(path string) (any, bool) {
	value, ok := s.lookup(path)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// GetNullable returns the value at path, reporting explicit nulls as
// NullValue with a true boolean. The boolean is false only when the path does
// not resolve.
func (s *Section) GetNullable(path string) (any, bool) {
	value, ok := s.lookup(path)
	if !ok {
		return nil, false
	}
	if value == nil {
		return NullValue, true
	}
	return value, true
}

// Contains reports whether a node exists at path, including nodes holding an
// explicit null.
func (s *Section) Contains(path string) bool {
	_, ok := s.lookup(path)
	return ok
}

// Set associates a value with the node at path, creating intermediate
// sections as needed. Any intermediate node that is not a section is replaced
// by a new empty section, discarding its previous value.
//
// A nil value removes the node (and its comment, if any). NullValue stores an
// explicit null. A map or *Section value is deep-copied into a fresh section
// at path; the original is never aliased. Everything else is stored as-is.
func (s *Section) Set(path string, value any) error {
	segments, err := SplitPath(path, s.separator)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case *Section:
		return s.setSeeded(segments, v.nodes)
	case *OrderedMap:
		return s.setSeeded(segments, v)
	case map[string]any:
		return s.setSeeded(segments, orderedFromMap(v))
	}

	current := s
	for i, segment := range segments {
		if i < len(segments)-1 {
			current = current.descendCreate(segment)
			continue
		}
		invalidateUp(current, segment)
		switch {
		case value == nil:
			current.removeChild(segment)
		case value == NullValue:
			current.nodes.put(segment, nil)
		default:
			current.nodes.put(segment, value)
		}
	}
	return nil
}

// setSeeded replaces the node at the tokenized path with a fresh section
// built from seed, running the usual map conversion (dotted-key explosion and
// serializer sniffing on nested maps).
func (s *Section) setSeeded(segments []string, seed *OrderedMap) error {
	current := s
	for _, segment := range segments[:len(segments)-1] {
		current = current.descendCreate(segment)
	}

	last := segments[len(segments)-1]
	invalidateUp(current, last)
	current.nodes.delete(last)

	child := newSection(last, current, current.root)
	if err := convertNodes(child, seed); err != nil {
		return err
	}
	current.nodes.put(last, child)
	return nil
}

// CreateSection returns the section at path, creating it and any missing
// intermediate sections. Existing sections along the way are reused;
// non-section values in the way are replaced by empty sections.
func (s *Section) CreateSection(path string) (*Section, error) {
	return s.CreateSectionSeeded(path, nil)
}

// CreateSectionSeeded is CreateSection with starting nodes: when the final
// section did not exist yet, it is populated from seed using the same
// conversion rules as Set.
func (s *Section) CreateSectionSeeded(path string, seed map[string]any) (*Section, error) {
	segments, err := SplitPath(path, s.separator)
	if err != nil {
		return nil, err
	}

	current := s
	for i, segment := range segments {
		if existing, ok := current.nodes.Get(segment); ok {
			if child, isSection := existing.(*Section); isSection {
				current = child
				continue
			}
		}

		invalidateUp(current, segment)
		child := newSection(segment, current, current.root)
		if i == len(segments)-1 && seed != nil {
			if err := convertNodes(child, orderedFromMap(seed)); err != nil {
				return nil, err
			}
		}
		current.nodes.put(segment, child)
		current = child
	}
	return current, nil
}

// PutAll merges the top-level keys of nodes into this section, overwriting on
// collision. Nested maps become sections, dotted keys are exploded, and
// registered serializers get a chance to decode recognizable substructures.
func (s *Section) PutAll(nodes map[string]any) error {
	return convertNodes(s, orderedFromMap(nodes))
}

// PutAllSection merges every node of another section into this one,
// recursively copying nested sections so the trees never share structure.
func (s *Section) PutAllSection(other *Section) error {
	return convertNodes(s, other.nodes)
}

// AbsoluteNodes flattens every leaf under this section into a new ordered
// map keyed by absolute path, in depth-first order. A section with no
// children is surfaced as the value for its own path, since it would
// otherwise be invisible in a leaf-only flatten.
func (s *Section) AbsoluteNodes() *OrderedMap {
	out := newOrderedMap()
	absoluteNodes(s, out)
	return out
}

func absoluteNodes(s *Section, out *OrderedMap) {
	if s.nodes.Len() == 0 {
		out.put(s.path, s)
		return
	}
	s.nodes.each(func(key string, value any) bool {
		if child, isSection := value.(*Section); isSection {
			absoluteNodes(child, out)
		} else {
			out.put(childPath(s, key), value)
		}
		return true
	})
}

// descendCreate returns the section child named key, creating it (and
// silently replacing any non-section value under that key) when absent.
func (s *Section) descendCreate(key string) *Section {
	if existing, ok := s.nodes.Get(key); ok {
		if child, isSection := existing.(*Section); isSection {
			return child
		}
	}
	invalidateUp(s, key)
	child := newSection(key, s, s.root)
	s.nodes.put(key, child)
	return child
}

// removeChild deletes the node under key together with the comment stored at
// exactly that node's path. Comments keyed under removed descendants become
// inert rather than dangling: emission walks the value tree, never the
// comment store.
func (s *Section) removeChild(key string) {
	if _, ok := s.nodes.Get(key); !ok {
		return
	}
	s.nodes.delete(key)
	s.root.removeComment(childPath(s, key))
}

// Equal reports structural equality: same absolute path and the same
// children in the same order, compared recursively.
func (s *Section) Equal(other *Section) bool {
	if other == nil || s.path != other.path || s.nodes.Len() != other.nodes.Len() {
		return false
	}
	for i, key := range s.nodes.keys {
		if other.nodes.keys[i] != key {
			return false
		}
		a := s.nodes.values[key]
		b := other.nodes.values[key]

		aSection, aIsSection := a.(*Section)
		bSection, bIsSection := b.(*Section)
		if aIsSection != bIsSection {
			return false
		}
		if aIsSection {
			if !aSection.Equal(bSection) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}
