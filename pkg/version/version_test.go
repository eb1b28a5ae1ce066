package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setVersion(t *testing.T, v, commit string) {
	t.Helper()
	oldVersion, oldCommit := Version, CommitHash
	Version, CommitHash = v, commit
	t.Cleanup(func() { Version, CommitHash = oldVersion, oldCommit })
}

func TestSummary(t *testing.T) {
	t.Run("Should return the bare version without a commit", func(t *testing.T) {
		setVersion(t, "1.2.0", "unknown")
		assert.Equal(t, "1.2.0", Summary())
	})
	t.Run("Should append a short commit", func(t *testing.T) {
		setVersion(t, "1.2.0", "0123456789abcdef")
		assert.Equal(t, "1.2.0+0123456", Summary())
	})
	t.Run("Should fall back to dev", func(t *testing.T) {
		setVersion(t, " ", "")
		assert.Equal(t, "dev", Summary())
		assert.Equal(t, "prscope/dev", UserAgent())
	})
}
