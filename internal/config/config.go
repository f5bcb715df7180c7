package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string        `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort    string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	CORSOrigins []string      `yaml:"cors-origins" env:"CORS_ORIGINS" env-default:"http://localhost:*,http://127.0.0.1:*"`
	Redis       Redis         `yaml:"redis"`
	SessionTTL  time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Game        Game          `yaml:"game"`
	Field       Field         `yaml:"field"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	ComputerDelay time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"700ms"`
}

type Field struct {
	Particles int     `yaml:"particles" env:"FIELD_PARTICLES" env-default:"100"`
	FPS       int     `yaml:"fps" env:"FIELD_FPS" env-default:"30"`
	Width     int     `yaml:"width" env:"FIELD_WIDTH" env-default:"1280"`
	Height    int     `yaml:"height" env:"FIELD_HEIGHT" env-default:"720"`
	// RateLimit is the inbound messages per second and connection, 0 turns the limit off.
	RateLimit float64 `yaml:"rate-limit" env:"FIELD_RATE_LIMIT" env-default:"120"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// FrameInterval is the time between two particle frames.
func (that *Field) FrameInterval() time.Duration {
	if that.FPS <= 0 {
		return time.Second / 30
	}

	return time.Second / time.Duration(that.FPS)
}
