// File: yamlhandler/serializer.go
package yamlhandler

import (
	"fmt"
	"reflect"
)

// Serializer converts objects of one type to and from the single level of
// key-value pairs a configuration node can hold. Registering one lets the
// tree store types a document cannot represent natively.
//
// Serializers are expected to be stateless, and Deserialize(Serialize(o))
// must yield an object equal to o by the serializer's own equality contract.
type Serializer interface {
	// Type returns the type this serializer handles. During serialization a
	// value is matched against it with assignability semantics, so an
	// interface type here matches every implementation.
	Type() reflect.Type

	// UsesSectionNodes controls the shape of the map handed to Deserialize:
	// true keeps nested sections as *Section values, false flattens them to
	// plain nested map[string]any first.
	UsesSectionNodes() bool

	// Serialize converts obj into its map representation. Values inside the
	// returned map may themselves be of serializable types or *Section; they
	// are re-encoded recursively on dump.
	Serialize(obj any) (map[string]any, error)

	// Deserializable sniffs whether the map is this serializer's work,
	// typically by checking a discriminator key. Nested values in the map are
	// already converted, so inner mappings appear as *Section regardless of
	// UsesSectionNodes.
	Deserializable(nodes map[string]any) bool

	// Deserialize reconstructs the object from a map previously produced by
	// Serialize.
	Deserialize(nodes map[string]any) (any, error)
}

// SerializerRegistry is an ordered collection of serializers. Resolution in
// both directions is a linear first-match scan in registration order, which
// makes registration order the tie-break for ambiguous sniffers; ordering
// them correctly is the registrant's responsibility.
//
// The registry is immutable after the owning Configuration is constructed.
type SerializerRegistry struct {
	serializers []Serializer
}

func newSerializerRegistry(serializers []Serializer) *SerializerRegistry {
	owned := make([]Serializer, len(serializers))
	copy(owned, serializers)
	return &SerializerRegistry{serializers: owned}
}

// Serializers returns the registered serializers in priority order.
func (r *SerializerRegistry) Serializers() []Serializer {
	out := make([]Serializer, len(r.serializers))
	copy(out, r.serializers)
	return out
}

// ForType returns the first registered serializer whose handled type the
// given type is assignable to, or nil when none matches. A nil result is not
// an error: the value is simply stored as a plain node.
func (r *SerializerRegistry) ForType(t reflect.Type) Serializer {
	if t == nil {
		return nil
	}
	for _, serializer := range r.serializers {
		handled := serializer.Type()
		if handled == nil {
			continue
		}
		if t == handled || t.AssignableTo(handled) {
			return serializer
		}
	}
	return nil
}

// sniff offers a freshly converted section to the registry. The first
// serializer whose Deserializable accepts the section's nodes decodes it;
// when none does, the section stays a plain section.
func (r *SerializerRegistry) sniff(section *Section) (any, bool, error) {
	if len(r.serializers) == 0 {
		return nil, false, nil
	}

	nodes := make(map[string]any, section.nodes.Len())
	section.nodes.each(func(key string, value any) bool {
		nodes[key] = value
		return true
	})

	for _, serializer := range r.serializers {
		if !serializer.Deserializable(nodes) {
			continue
		}
		arg := nodes
		if !serializer.UsesSectionNodes() {
			arg = plainNodes(section)
		}
		obj, err := serializer.Deserialize(arg)
		if err != nil {
			return nil, false, fmt.Errorf("%w: deserializing node %q: %w", ErrSerialization, section.path, err)
		}
		return obj, true, nil
	}
	return nil, false, nil
}

// trySerialize encodes value through the registry when a serializer claims
// its type. The returned map is recursively re-encoded, since field values
// may themselves be serializable objects or sections.
func (r *SerializerRegistry) trySerialize(value any) (*OrderedMap, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	serializer := r.ForType(reflect.TypeOf(value))
	if serializer == nil {
		return nil, false, nil
	}

	nodes, err := serializer.Serialize(value)
	if err != nil {
		return nil, false, fmt.Errorf("%w: serializing %T: %w", ErrSerialization, value, err)
	}

	out, err := r.serializeNodes(nodes)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// serializeNodes deep-encodes a serializer's output map. Serializer maps are
// plain Go maps, so their keys are emitted in sorted order for determinism.
func (r *SerializerRegistry) serializeNodes(nodes map[string]any) (*OrderedMap, error) {
	out := orderedFromMap(nodes)
	for _, key := range out.Keys() {
		value, _ := out.Get(key)

		if section, isSection := value.(*Section); isSection {
			converted, err := sectionToOrdered(section, true)
			if err != nil {
				return nil, err
			}
			out.put(key, converted)
			continue
		}

		serialized, ok, err := r.trySerialize(value)
		if err != nil {
			return nil, err
		}
		if ok {
			out.put(key, serialized)
		}
	}
	return out, nil
}
