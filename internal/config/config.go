package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis             Redis    `yaml:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"playground.db"`
	Game              Game     `yaml:"game"`
	Markdown          Markdown `yaml:"markdown"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Game struct {
	// TTL is how long an untouched game is kept in redis.
	TTL               time.Duration `yaml:"ttl" env:"GAME_TTL"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"GAME_DEFAULT_DIFFICULTY" env-default:"hard"`
}

type Markdown struct {
	UnsafeHTML    bool   `yaml:"unsafe-html" env:"MARKDOWN_UNSAFE_HTML" env-default:"false"`
	Sanitize      bool   `yaml:"sanitize" env:"MARKDOWN_SANITIZE"`
	ExternalLinks bool   `yaml:"external-links" env:"MARKDOWN_EXTERNAL_LINKS"`
	HardWraps     bool   `yaml:"hard-wraps" env:"MARKDOWN_HARD_WRAPS" env-default:"false"`
	TerminalStyle string `yaml:"terminal-style" env:"MARKDOWN_TERMINAL_STYLE" env-default:"dark"`
	TerminalWidth int    `yaml:"terminal-width" env:"MARKDOWN_TERMINAL_WIDTH"`
}

// newDefaults holds the defaults whose zero value is meaningful. cleanenv
// applies env-default to any field left zero, so an explicit "false" or "0"
// in the file would be overwritten by a tag default.
func newDefaults() *Config {
	return &Config{
		Game: Game{
			TTL: 24 * time.Hour,
		},
		Markdown: Markdown{
			Sanitize:      true,
			ExternalLinks: true,
			TerminalWidth: 80,
		},
	}
}

// Load reads the yaml file at path with environment overrides. A missing file
// is not an error: defaults and the environment are used instead.
func Load(path string) (*Config, error) {
	config := newDefaults()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
