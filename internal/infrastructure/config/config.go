package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Upstream is the external marketplace REST API.
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:8081"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`

	// SessionJWTSecret signs the browser session cookie.
	SessionJWTSecret string        `env:"SESSION_JWT_SECRET"`
	SessionTTL       time.Duration `env:"SESSION_TTL,       default=336h"`
	SignupTokenTTL   time.Duration `env:"SIGNUP_TOKEN_TTL,  default=10m"`

	// Timezone anchors campaign deadlines and pickup instants.
	Timezone string `env:"TIMEZONE, default=Asia/Seoul"`

	HistoryWorkers int `env:"HISTORY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gongu_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
