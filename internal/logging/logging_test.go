package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Should build a json logger at the requested level", func(t *testing.T) {
		logger, err := New("warn", "json")
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})
	t.Run("Should default to the console format", func(t *testing.T) {
		logger, err := New("debug", "")
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
	t.Run("Should reject an unknown level", func(t *testing.T) {
		_, err := New("loud", "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
	t.Run("Should reject an unknown format", func(t *testing.T) {
		_, err := New("info", "xml")
		require.Error(t, err)
	})
}
