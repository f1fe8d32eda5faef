package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=12h"`
	SeedDemoData  bool          `env:"SEED_DEMO_DATA, default=false"`
	StaticDir     string        `env:"STATIC_DIR,     default=static"`

	Postgres PostgresConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	Host             string        `env:"POSTGRES_HOST,         default=localhost"`
	Port             int           `env:"POSTGRES_PORT,         default=5432"`
	User             string        `env:"POSTGRES_USER,         default=pos"`
	Password         string        `env:"POSTGRES_PASSWORD"`
	Database         string        `env:"POSTGRES_DB,           default=pos_system"`
	StatementTimeout time.Duration `env:"POSTGRES_STMT_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
