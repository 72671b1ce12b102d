// Package config loads runtime settings from the environment, after an
// optional .env file in the working directory.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	APIURL    string        `env:"SACHCU_API_URL,     default=http://localhost:8080/api"`
	Timeout   time.Duration `env:"SACHCU_API_TIMEOUT, default=0s"`
	LogLevel  string        `env:"SACHCU_LOG_LEVEL,   default=info"`
	LogPretty bool          `env:"SACHCU_LOG_PRETTY,  default=true"`

	ModerationWorkers int `env:"SACHCU_MODERATION_WORKERS, default=4"`

	Session SessionConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	DevAPI  DevAPIConfig
}

type SessionConfig struct {
	Backend   string        `env:"SACHCU_SESSION_BACKEND,   default=file"`
	File      string        `env:"SACHCU_SESSION_FILE"`
	Namespace string        `env:"SACHCU_SESSION_NAMESPACE, default=default"`
	TTL       time.Duration `env:"SACHCU_SESSION_TTL,       default=0s"`
}

type RedisConfig struct {
	Addr     string `env:"SACHCU_REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"SACHCU_REDIS_PASSWORD"`
	DB       int    `env:"SACHCU_REDIS_DB,       default=0"`
}

type MongoConfig struct {
	URI      string `env:"SACHCU_MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"SACHCU_MONGO_DB,  default=sachcu"`
}

type DevAPIConfig struct {
	Addr      string        `env:"SACHCU_DEVAPI_ADDR,       default=:8080"`
	JWTSecret string        `env:"SACHCU_DEVAPI_JWT_SECRET, default=sachcu-dev-secret"`
	TokenTTL  time.Duration `env:"SACHCU_DEVAPI_TOKEN_TTL,  default=24h"`
	BasePath  string        `env:"SACHCU_DEVAPI_BASE_PATH,  default=/api"`
	Seed      bool          `env:"SACHCU_DEVAPI_SEED,       default=true"`
}

// Load reads .env when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// loadDotenv exports the variables in path. A missing file is not an error;
// one that exists but cannot be read or parsed is.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: load %s: %w", path, err)
}

// LoadFrom reads configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Session.Backend = strings.ToLower(strings.TrimSpace(c.Session.Backend))
	switch c.Session.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("config: SACHCU_SESSION_BACKEND must be file, redis, mongo or memory, got %q", c.Session.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: SACHCU_API_TIMEOUT must not be negative")
	}
	return nil
}
