package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWritesToFile(t *testing.T) {
	defer Replace(nil)

	path := filepath.Join(t.TempDir(), "logs", "notetree.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: path}))

	Named("test").Debug("hello", zap.String("k", "v"))
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"hello"`), string(data))
	assert.Contains(t, string(data), `"logger":"test"`)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	defer Replace(nil)
	err := Init(Config{Level: "loud", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestEmptyOutputIsNop(t *testing.T) {
	require.NoError(t, Init(Config{}))
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestReplace(t *testing.T) {
	defer Replace(nil)
	core, logs := observer.New(zapcore.InfoLevel)
	Replace(zap.New(core))

	L().Info("observed")
	assert.Equal(t, 1, logs.FilterMessage("observed").Len())
}

func TestSetLevel(t *testing.T) {
	defer Replace(nil)
	path := filepath.Join(t.TempDir(), "lvl.log")
	require.NoError(t, Init(Config{Level: "info", OutputPath: path}))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, SetLevel("debug"))
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.Error(t, SetLevel("nope"))
}
