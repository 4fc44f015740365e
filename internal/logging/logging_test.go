package logging_test

import (
	"testing"

	"github.com/db47h/ledmatrix/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, d := range []struct {
		level string
		dev   bool
		want  zapcore.Level
	}{
		{"debug", false, zapcore.DebugLevel},
		{"info", true, zapcore.InfoLevel},
		{"warn", false, zapcore.WarnLevel},
		{"error", true, zapcore.ErrorLevel},
	} {
		l, err := logging.New(d.level, d.dev)
		require.NoError(t, err, d.level)
		assert.True(t, l.Core().Enabled(d.want), d.level)
		assert.False(t, l.Core().Enabled(d.want-1), d.level)
	}

	_, err := logging.New("loud", false)
	assert.Error(t, err)
}
