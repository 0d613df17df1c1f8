package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"production"`

	// DatabaseURI selects the durable store by scheme. Empty means
	// in-memory only.
	DatabaseURI              string        `env:"DATABASE_URI"`
	DatabaseName             string        `env:"DATABASE_NAME" envDefault:"tts-clone"`
	DatabaseConnectTimeout   time.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"5s"`
	DatabaseOperationTimeout time.Duration `env:"DATABASE_OPERATION_TIMEOUT" envDefault:"45s"`

	AudioBase string `env:"AUDIO_BASE_URL" envDefault:"https://example.com/audio"`
	TTSBase   string `env:"TTS_BASE_URL" envDefault:"http://localhost:8080/media"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Env == "development"
}
