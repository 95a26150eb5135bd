package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads values and fills defaults", func(t *testing.T) {
		// Given: a config file with only some fields set
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nredis:\n  host: redis\ngame:\n  ttl: 30m\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: file values win and the rest comes from defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Game.TTL)
		assert.Equal(t, "human", conf.Game.DefaultX)
		assert.Equal(t, "bot", conf.Game.DefaultO)
	})

	t.Run("Panics on missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
