// File: yamlhandler/loader.go
package yamlhandler

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// CodecOptions carries the rendering knobs a Codec needs: the path separator
// used for comment-map keys, indentation width, flow-vs-block emission, and
// whether comments are processed at all.
type CodecOptions struct {
	Separator rune
	Indent    int
	FlowStyle bool
	Comments  bool
}

// Codec is the document boundary of the engine: it turns raw text into a
// plain ordered node tree plus an optional comment map, and back. The engine
// itself never touches document syntax.
type Codec interface {
	// Decode parses document text. It fails with an error wrapping
	// ErrInvalidDocument on malformed input or when the top-level value is
	// not a mapping. The comment map may be nil.
	Decode(data []byte, opts CodecOptions) (*OrderedMap, map[string]Comment, error)

	// Encode renders a node tree to document text, attaching comments to the
	// nodes present at their paths. Comments for nonexistent paths are
	// ignored.
	Encode(nodes *OrderedMap, comments map[string]Comment, opts CodecOptions) ([]byte, error)
}

// Loader builds Configuration instances from document sources and renders
// them back. Options are set fluently before the first Load or Dump:
//
//	loader := yamlhandler.NewLoader().
//	    WithSeparator('.').
//	    WithIndent(2).
//	    WithSerializers(&locationSerializer{})
//	cfg, err := loader.LoadFile("config.yml")
//
// A Loader is not safe for concurrent use, and neither are the
// configurations it produces.
type Loader struct {
	separator   rune
	indent      int
	flow        bool
	comments    bool
	cache       bool
	codec       Codec
	serializers []Serializer
}

// NewLoader returns a loader with the default options: '.' separator,
// 2-space indent, block style, comment processing and lookup caching on, and
// the YAML codec.
func NewLoader() *Loader {
	return &Loader{
		separator: '.',
		indent:    2,
		comments:  true,
		cache:     true,
		codec:     YAMLCodec{},
	}
}

// WithSeparator sets the path separator character. Every Configuration
// produced afterwards keeps the separator it was created with.
func (l *Loader) WithSeparator(separator rune) *Loader {
	l.separator = separator
	return l
}

// WithIndent sets the indentation width, 1 to 10 spaces.
func (l *Loader) WithIndent(indent int) *Loader {
	l.indent = indent
	return l
}

// WithFlowStyle switches between flow (true) and block (false) emission.
func (l *Loader) WithFlowStyle(flow bool) *Loader {
	l.flow = flow
	return l
}

// WithComments toggles comment processing on load and dump.
func (l *Loader) WithComments(enabled bool) *Loader {
	l.comments = enabled
	return l
}

// WithLookupCache toggles the per-section lookup cache. Disabling it changes
// performance only, never results.
func (l *Loader) WithLookupCache(enabled bool) *Loader {
	l.cache = enabled
	return l
}

// WithCodec swaps the document codec.
func (l *Loader) WithCodec(codec Codec) *Loader {
	l.codec = codec
	return l
}

// WithSerializers appends serializers to the registry. Registration order is
// the priority order for both type resolution and deserialization sniffing.
func (l *Loader) WithSerializers(serializers ...Serializer) *Loader {
	l.serializers = append(l.serializers, serializers...)
	return l
}

// Separator returns the configured path separator.
func (l *Loader) Separator() rune { return l.separator }

// Serializers returns the registered serializers in priority order.
func (l *Loader) Serializers() []Serializer {
	out := make([]Serializer, len(l.serializers))
	copy(out, l.serializers)
	return out
}

// Load reads all of r and loads a configuration from it.
func (l *Loader) Load(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return l.loadBytes(data, "")
}

// LoadString loads a configuration from document text.
func (l *Loader) LoadString(contents string) (*Configuration, error) {
	return l.loadBytes([]byte(contents), "")
}

// LoadFile reads and loads the configuration file at path. The resulting
// configuration remembers the path, so Save can write back to the same file.
func (l *Loader) LoadFile(path string) (*Configuration, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil, fmt.Errorf("given path '%s' is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return l.loadBytes(data, path)
}

func (l *Loader) loadBytes(data []byte, filePath string) (*Configuration, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}

	nodes, comments, err := l.codec.Decode(data, l.codecOptions())
	if err != nil {
		return nil, err
	}
	if !l.comments {
		comments = nil
	}

	c := newConfiguration(l, filePath, comments)
	if nodes != nil {
		if err := convertNodes(c.Section, nodes); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Dump renders a configuration to document text through the codec,
// re-encoding typed objects via the serializer registry.
func (l *Loader) Dump(c *Configuration) (string, error) {
	if err := l.validate(); err != nil {
		return "", err
	}

	nodes, err := sectionToOrdered(c.Section, true)
	if err != nil {
		return "", err
	}

	var comments map[string]Comment
	if l.comments {
		comments = c.Comments()
	}

	data, err := l.codec.Encode(nodes, comments, l.codecOptions())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *Loader) validate() error {
	if l.codec == nil {
		return errors.New("loader has no codec")
	}
	if l.separator == 0 {
		return errors.New("loader has no separator")
	}
	if l.indent < 1 || l.indent > 10 {
		return fmt.Errorf("indent must be between 1 and 10, got %d", l.indent)
	}
	return nil
}

func (l *Loader) codecOptions() CodecOptions {
	return CodecOptions{
		Separator: l.separator,
		Indent:    l.indent,
		FlowStyle: l.flow,
		Comments:  l.comments,
	}
}
