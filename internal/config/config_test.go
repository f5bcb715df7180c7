package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads values and fills defaults", func(t *testing.T) {
		// Given: a config file with a few keys set
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: cache
game:
  computer-delay: 1s
field:
  fps: 60
`)

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: set keys are read and the rest fall back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "json", conf.LogFormat)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, []string{"http://localhost:*", "http://127.0.0.1:*"}, conf.CORSOrigins)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, time.Second, conf.Game.ComputerDelay)
		assert.Equal(t, 100, conf.Field.Particles)
		assert.Equal(t, time.Second/60, conf.Field.FrameInterval())
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// Then: loading panics
		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}

func TestField_FrameInterval(t *testing.T) {
	// Given: a field config without a usable fps
	field := Field{FPS: 0}

	// Then: 30 frames per second is assumed
	assert.Equal(t, time.Second/30, field.FrameInterval())
}
