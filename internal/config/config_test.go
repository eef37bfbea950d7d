package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	// Given: a config file on disk
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte("log-level: debug\nhttp-port: \"7070\"\nsocket-port: \"7071\"\nredis:\n  host: redis\n  port: \"6380\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	// When: the config is loaded
	conf := MustLoad(path)

	// Then: every field comes from the file
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "7070", conf.HTTPPort)
	assert.Equal(t, "7071", conf.SocketPort)
	assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		want     slog.Level
	}{
		{logLevel: "debug", want: slog.LevelDebug},
		{logLevel: "info", want: slog.LevelInfo},
		{logLevel: "warn", want: slog.LevelWarn},
		{logLevel: "error", want: slog.LevelError},
		{logLevel: "verbose", want: slog.LevelInfo},
		{logLevel: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("Maps "+tt.logLevel, func(t *testing.T) {
			conf := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, conf.SlogLevel())
		})
	}
}
