package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetLogLevelString(t *testing.T) {
	prev := Level()
	defer SetLogLevel(prev)

	require.NoError(t, SetLogLevelString("debug"))
	assert.Equal(t, zapcore.DebugLevel, Level())

	assert.Error(t, SetLogLevelString("loud"))
	assert.Equal(t, zapcore.DebugLevel, Level(), "bad input keeps the current level")
	assert.NotNil(t, L())
}
