// File: yamlhandler/comment.go
package yamlhandler

// Comment is the comment metadata attached to one node path. Block text is
// rendered on the line(s) preceding the node, inline text on the node's own
// line. A Comment with both fields empty is never stored.
type Comment struct {
	Block  string
	Inline string
}

// IsZero reports whether the comment carries no text at all.
func (c Comment) IsZero() bool {
	return c.Block == "" && c.Inline == ""
}

// SetComment assigns comment text to the node at path. Block and inline text
// are independent: setting one leaves the other untouched. Setting empty text
// clears that side, and once both sides are empty the entry is removed from
// the store entirely.
//
// The store is sparse and independent of the value tree: a comment may be set
// on a path that holds no node, in which case it stays inert until a node
// exists there at dump time.
func (c *Configuration) SetComment(path, text string, inline bool) error {
	segments, err := SplitPath(path, c.separator)
	if err != nil {
		return err
	}
	key := joinPath(segments, c.separator)

	comment := c.comments[key]
	if inline {
		comment.Inline = text
	} else {
		comment.Block = text
	}

	if comment.IsZero() {
		c.removeComment(key)
		return nil
	}
	if c.comments == nil {
		c.comments = make(map[string]Comment)
	}
	c.comments[key] = comment
	return nil
}

// Comment returns the comment stored for path, if any.
func (c *Configuration) Comment(path string) (Comment, bool) {
	segments, err := SplitPath(path, c.separator)
	if err != nil {
		return Comment{}, false
	}
	comment, ok := c.comments[joinPath(segments, c.separator)]
	return comment, ok
}

// Comments returns a copy of the comment store, keyed by absolute path.
// Returns nil when no comments are set.
func (c *Configuration) Comments() map[string]Comment {
	if len(c.comments) == 0 {
		return nil
	}
	out := make(map[string]Comment, len(c.comments))
	for path, comment := range c.comments {
		out[path] = comment
	}
	return out
}

func (c *Configuration) removeComment(path string) {
	if c.comments == nil {
		return
	}
	delete(c.comments, path)
	if len(c.comments) == 0 {
		c.comments = nil
	}
}
