// File: yamlhandler/config.go
package yamlhandler

// Configuration is the root of a configuration tree. It wraps a distinguished
// root Section (whose name and path are empty) and owns everything that is
// shared across the tree: the path separator, the serializer registry, the
// comment store, and the optional source file location.
//
// All Section operations are available on a Configuration through the
// embedded root section.
type Configuration struct {
	*Section

	loader       *Loader
	registry     *SerializerRegistry
	separator    rune
	cacheEnabled bool
	filePath     string
	comments     map[string]Comment
}

// NewConfiguration creates an empty configuration bound to the loader's
// separator, serializers, and codec.
func NewConfiguration(loader *Loader) *Configuration {
	return newConfiguration(loader, "", nil)
}

// NewConfigurationFrom creates a configuration preloaded from a map of nodes.
// Nested maps become sections, dotted keys are exploded into nested sections,
// and registered serializers may decode recognizable substructures.
func NewConfigurationFrom(loader *Loader, nodes map[string]any) (*Configuration, error) {
	c := newConfiguration(loader, "", nil)
	if nodes != nil {
		if err := convertNodes(c.Section, orderedFromMap(nodes)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newConfiguration(loader *Loader, filePath string, comments map[string]Comment) *Configuration {
	c := &Configuration{
		loader:       loader,
		registry:     newSerializerRegistry(loader.serializers),
		separator:    loader.separator,
		cacheEnabled: loader.cache,
		filePath:     filePath,
		comments:     comments,
	}
	c.Section = newRootSection(c)
	return c
}

// Loader returns the loader this configuration was built with.
func (c *Configuration) Loader() *Loader { return c.loader }

// Registry returns the serializer registry shared by the whole tree.
func (c *Configuration) Registry() *SerializerRegistry { return c.registry }

// FilePath returns the file this configuration was loaded from, when it was
// loaded from one.
func (c *Configuration) FilePath() (string, bool) {
	return c.filePath, c.filePath != ""
}

// AsMap flattens the tree into a new plain nested map: sections become
// map[string]any and typed objects are re-encoded through the serializer
// registry. Insertion order is necessarily lost; use Dump for order-preserving
// output.
func (c *Configuration) AsMap() (map[string]any, error) {
	nodes, err := sectionToOrdered(c.Section, true)
	if err != nil {
		return nil, err
	}
	return orderedToPlain(nodes), nil
}

// Dump renders the configuration to document text through the loader's
// codec, attaching stored comments to the nodes that still exist at their
// paths. Comments keyed to paths without a node are skipped.
func (c *Configuration) Dump() (string, error) {
	return c.loader.Dump(c)
}
