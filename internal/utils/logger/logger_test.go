package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestInitLogger_WritesServiceLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(func() { Log = nopLogger() })

	log, err := InitLogger("debug", dir)
	require.NoError(t, err)

	log.Info("item merged")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "service.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"item merged"`)
	assert.Contains(t, string(data), `"service":"foodia-shopping"`)
}
