// File: yamlhandler/yaml.go
package yamlhandler

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLCodec is the default document codec. It works on the yaml.v3 node API
// rather than plain unmarshalling so that key order survives and comments can
// be carried in and out: a key's head comment maps to Comment.Block, a line
// comment to Comment.Inline.
type YAMLCodec struct{}

// Decode parses YAML text into an ordered node tree and a comment map. An
// empty or all-null document yields an empty tree; any other non-mapping top
// level is rejected.
func (YAMLCodec) Decode(data []byte, opts CodecOptions) (*OrderedMap, map[string]Comment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return newOrderedMap(), nil, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
			return newOrderedMap(), nil, nil
		}
		return nil, nil, fmt.Errorf("%w: top level is not a mapping", ErrInvalidDocument)
	}

	var comments map[string]Comment
	if opts.Comments {
		comments = make(map[string]Comment)
	}
	nodes, err := yamlMapping(top, "", opts, comments)
	if err != nil {
		return nil, nil, err
	}
	if len(comments) == 0 {
		comments = nil
	}
	return nodes, comments, nil
}

func yamlMapping(node *yaml.Node, path string, opts CodecOptions, comments map[string]Comment) (*OrderedMap, error) {
	out := newOrderedMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			// Complex mapping keys have no path representation; skipped.
			continue
		}

		key := keyNode.Value
		nodePath := key
		if path != "" {
			nodePath = path + string(opts.Separator) + key
		}

		if comments != nil {
			if block := commentText(keyNode.HeadComment); block != "" {
				c := comments[nodePath]
				c.Block = block
				comments[nodePath] = c
			}
			inline := commentText(valueNode.LineComment)
			if inline == "" {
				inline = commentText(keyNode.LineComment)
			}
			if inline != "" {
				c := comments[nodePath]
				c.Inline = inline
				comments[nodePath] = c
			}
		}

		value, err := yamlValue(valueNode, nodePath, opts, comments)
		if err != nil {
			return nil, err
		}
		out.put(key, value)
	}
	return out, nil
}

func yamlValue(node *yaml.Node, path string, opts CodecOptions, comments map[string]Comment) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return yamlMapping(node, path, opts, comments)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			// Sequence elements have no addressable path; comments inside
			// them are not collected.
			value, err := yamlValue(item, path, opts, nil)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias, path, opts, nil)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return value, nil
	}
	return nil, nil
}

// commentText normalizes a yaml.v3 comment string: the parser keeps each
// line's leading '#', which is stripped here so stored comments are plain
// text. The encoder adds the '#' back on its own.
func commentText(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(strings.TrimSpace(line), "#")
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}

// Encode renders an ordered node tree to YAML, attaching stored comments to
// the keys and values present at their paths.
func (YAMLCodec) Encode(nodes *OrderedMap, comments map[string]Comment, opts CodecOptions) ([]byte, error) {
	if !opts.Comments {
		comments = nil
	}
	root, err := yamlFromOrdered(nodes, "", opts, comments)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(opts.Indent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlFromOrdered(m *OrderedMap, path string, opts CodecOptions, comments map[string]Comment) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if opts.FlowStyle {
		node.Style = yaml.FlowStyle
	}

	var convErr error
	m.each(func(key string, value any) bool {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		nodePath := key
		if path != "" {
			nodePath = path + string(opts.Separator) + key
		}

		valueNode, err := yamlFromValue(value, nodePath, opts, comments)
		if err != nil {
			convErr = err
			return false
		}

		if comment, ok := comments[nodePath]; ok {
			if comment.Block != "" {
				keyNode.HeadComment = comment.Block
			}
			if comment.Inline != "" {
				valueNode.LineComment = comment.Inline
			}
		}

		node.Content = append(node.Content, keyNode, valueNode)
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return node, nil
}

func yamlFromValue(value any, path string, opts CodecOptions, comments map[string]Comment) (*yaml.Node, error) {
	switch v := value.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *OrderedMap:
		return yamlFromOrdered(v, path, opts, comments)
	case map[string]any:
		return yamlFromOrdered(orderedFromMap(v), path, opts, comments)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if opts.FlowStyle {
			node.Style = yaml.FlowStyle
		}
		for _, item := range v {
			itemNode, err := yamlFromValue(item, path, opts, nil)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode value at %q: %w", path, err)
	}
	return node, nil
}
