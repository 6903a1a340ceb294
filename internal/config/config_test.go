package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads values from the yaml file", func(t *testing.T) {
		// Given: a config file overriding a few values
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
http-port: "8080"
redis:
  host: redis.local
  port: "6380"
game:
  ttl: 1h
  default-difficulty: easy
markdown:
  unsafe-html: true
  terminal-width: 100
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: file values win and the rest falls back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "redis.local:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Game.TTL)
		assert.Equal(t, "easy", conf.Game.DefaultDifficulty)
		assert.True(t, conf.Markdown.UnsafeHTML)
		assert.True(t, conf.Markdown.Sanitize)
		assert.Equal(t, 100, conf.Markdown.TerminalWidth)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		// Given: an environment override and no config file
		t.Setenv("HTTP_PORT", "7070")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults and the environment are used
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Game.TTL)
		assert.Equal(t, "dark", conf.Markdown.TerminalStyle)
	})

	t.Run("Explicit false and zero values in the file are kept", func(t *testing.T) {
		// Given: a config file switching off settings that default to on
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
game:
  ttl: 0s
markdown:
  sanitize: false
  external-links: false
  terminal-width: 0
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: the file values are not replaced by defaults
		require.NoError(t, err)
		assert.False(t, conf.Markdown.Sanitize)
		assert.False(t, conf.Markdown.ExternalLinks)
		assert.Zero(t, conf.Markdown.TerminalWidth)
		assert.Zero(t, conf.Game.TTL)
	})

	t.Run("Environment overrides defaults without a file", func(t *testing.T) {
		// Given: sanitizing switched off through the environment
		t.Setenv("MARKDOWN_SANITIZE", "false")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment wins over the built-in default
		require.NoError(t, err)
		assert.False(t, conf.Markdown.Sanitize)
		assert.True(t, conf.Markdown.ExternalLinks)
		assert.Equal(t, 80, conf.Markdown.TerminalWidth)
	})

	t.Run("Returns an error on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [unclosed"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
