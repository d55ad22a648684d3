package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL,  default=http://localhost:8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,  default=5s"`
	LogLevel    string        `env:"LOG_LEVEL,     default=info"`
	LogPretty   bool          `env:"LOG_PRETTY,    default=true"`

	Store StoreConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Backend selects the session store: file, memory, or redis.
	Backend string `env:"SESSION_STORE, default=file"`
	// Path is the session file location; empty means the per-user default.
	Path string `env:"SESSION_FILE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
