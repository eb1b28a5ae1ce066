package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Run("Should round-trip every known category", func(t *testing.T) {
		for _, c := range Categories() {
			parsed, err := ParseCategory(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	})
	t.Run("Should ignore case and surrounding spaces", func(t *testing.T) {
		c, err := ParseCategory("  Assigned-To-Me ")
		require.NoError(t, err)
		assert.Equal(t, CategoryAssignedToMe, c)
	})
	t.Run("Should reject unknown names", func(t *testing.T) {
		_, err := ParseCategory("starred")
		assert.ErrorContains(t, err, "unknown category")
	})
}

func TestCategory_String(t *testing.T) {
	t.Run("Should describe unrecognized values", func(t *testing.T) {
		assert.Equal(t, "category(42)", Category(42).String())
	})
}

func TestNewRemote(t *testing.T) {
	t.Run("Should build the owner/name slug", func(t *testing.T) {
		remote, err := NewRemote("org", "repo")
		require.NoError(t, err)
		assert.Equal(t, "org", remote.Owner())
		assert.Equal(t, "repo", remote.Name())
		assert.Equal(t, "org/repo", remote.String())
	})
	t.Run("Should reject empty parts", func(t *testing.T) {
		_, err := NewRemote("", "repo")
		assert.Error(t, err)
		_, err = NewRemote("org", " ")
		assert.Error(t, err)
	})
}
