package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Storage StorageConfig
	Redis   RedisConfig
}

// BackendConfig points the agent at the remote commerce API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL, default=http://localhost:3000/api/v1"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// StorageConfig selects where session and cart records persist across
// restarts. "file" keeps them on the local disk; "redis" shares them with a
// co-located Redis instance.
type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=file"`
	Dir     string `env:"STORAGE_DIR, default=./data"`
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
