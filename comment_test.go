// File: yamlhandler/comment_test.go
package yamlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommentStore tests independent block and inline comment composition
func TestCommentStore(t *testing.T) {
	t.Run("BlockAndInlineCompose", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.SetComment("server", "main block", false))
		require.NoError(t, cfg.SetComment("server", "inline note", true))

		comment, ok := cfg.Comment("server")
		require.True(t, ok)
		assert.Equal(t, Comment{Block: "main block", Inline: "inline note"}, comment)
	})

	t.Run("ClearingOneSideKeepsOther", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.SetComment("key", "block", false))
		require.NoError(t, cfg.SetComment("key", "inline", true))

		require.NoError(t, cfg.SetComment("key", "", false))
		comment, ok := cfg.Comment("key")
		require.True(t, ok)
		assert.Equal(t, Comment{Inline: "inline"}, comment)
	})

	t.Run("ClearingBothRemovesEntry", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.SetComment("key", "block", false))
		require.NoError(t, cfg.SetComment("key", "", false))

		_, ok := cfg.Comment("key")
		assert.False(t, ok)
		assert.Nil(t, cfg.Comments())
	})

	t.Run("PathNormalized", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.SetComment(".a..b.", "text", false))
		comment, ok := cfg.Comment("a.b")
		require.True(t, ok)
		assert.Equal(t, "text", comment.Block)
	})

	t.Run("InvalidPath", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		assert.ErrorIs(t, cfg.SetComment("", "text", false), ErrInvalidPath)
	})

	t.Run("CommentsReturnsCopy", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.SetComment("key", "block", false))

		snapshot := cfg.Comments()
		snapshot["key"] = Comment{Block: "tampered"}
		comment, _ := cfg.Comment("key")
		assert.Equal(t, "block", comment.Block)
	})
}

// TestCommentLifecycle tests how comments interact with node mutations
func TestCommentLifecycle(t *testing.T) {
	t.Run("RemovedWithNode", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("a.b", 1))
		require.NoError(t, cfg.SetComment("a.b", "doomed", false))

		require.NoError(t, cfg.Set("a.b", nil))
		_, ok := cfg.Comment("a.b")
		assert.False(t, ok)
	})

	t.Run("CommentWithoutNodeIsInert", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("present", 1))
		require.NoError(t, cfg.SetComment("ghost", "never rendered", false))

		text, err := cfg.Dump()
		require.NoError(t, err)
		assert.NotContains(t, text, "never rendered")

		// The comment stays stored and attaches once the node appears.
		require.NoError(t, cfg.Set("ghost", 2))
		text, err = cfg.Dump()
		require.NoError(t, err)
		assert.Contains(t, text, "# never rendered")
	})

	t.Run("SurvivesValueOverwrite", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("key", 1))
		require.NoError(t, cfg.SetComment("key", "sticky", false))
		require.NoError(t, cfg.Set("key", 2))

		comment, ok := cfg.Comment("key")
		require.True(t, ok)
		assert.Equal(t, "sticky", comment.Block)
	})
}

// TestCommentRendering tests comment attachment in dumped documents
func TestCommentRendering(t *testing.T) {
	t.Run("BlockAndInlinePlacement", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader())
		require.NoError(t, cfg.Set("server.host", "localhost"))
		require.NoError(t, cfg.SetComment("server", "main server block", false))
		require.NoError(t, cfg.SetComment("server.host", "primary hostname", true))

		text, err := cfg.Dump()
		require.NoError(t, err)
		assert.Contains(t, text, "# main server block")
		assert.Contains(t, text, "localhost # primary hostname")
	})

	t.Run("DisabledCommentsSkipRendering", func(t *testing.T) {
		cfg := NewConfiguration(NewLoader().WithComments(false))
		require.NoError(t, cfg.Set("key", 1))
		require.NoError(t, cfg.SetComment("key", "invisible", false))

		text, err := cfg.Dump()
		require.NoError(t, err)
		assert.NotContains(t, text, "invisible")
	})
}
