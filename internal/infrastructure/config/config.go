package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	Upstream  UpstreamConfig
	Bootstrap BootstrapConfig
	Throttle  ThrottleConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// UpstreamConfig points the console at the platform REST API.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=120s"`
}

// BootstrapConfig optionally enables a local break-glass operator account for
// when the upstream identity endpoint is unavailable. The hash is a bcrypt
// digest; leaving either field empty disables the account.
type BootstrapConfig struct {
	Email        string `env:"BOOTSTRAP_EMAIL"`
	PasswordHash string `env:"BOOTSTRAP_PASSWORD_HASH"`
}

type ThrottleConfig struct {
	LoginLimit  int           `env:"LOGIN_ATTEMPT_LIMIT,  default=10"`
	LoginWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=chooy_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
