package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"

	AuthModeMock     = "mock"
	AuthModeAccounts = "accounts"

	AuditSinkLog   = "log"
	AuditSinkMongo = "mongo"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	ContextSecret string `env:"CONTEXT_SECRET, default=dev-context-secret"`

	StorageBackend string `env:"STORAGE_BACKEND, default=memory"`

	Auth    AuthConfig
	Session SessionConfig
	Audit   AuditConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	Mode         string        `env:"AUTH_MODE,          default=mock"`
	LoginDelay   time.Duration `env:"AUTH_LOGIN_DELAY,   default=1s"`
	LoginTimeout time.Duration `env:"AUTH_LOGIN_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	RestoreWait  time.Duration `env:"SESSION_RESTORE_WAIT,  default=250ms"`
	RegistrySize int           `env:"SESSION_REGISTRY_SIZE, default=10000"`
	IdleTTL      time.Duration `env:"SESSION_IDLE_TTL,      default=30m"`
	CookieSecure bool          `env:"COOKIE_SECURE,         default=false"`
}

type AuditConfig struct {
	Sink    string `env:"AUDIT_SINK,    default=log"`
	Workers int    `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agency_portal"`
}

// RedisConfig selects the Redis instance. A zero KeyTTL keeps context keys
// until they are deleted.
type RedisConfig struct {
	Addr   string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB     int           `env:"REDIS_DB,      default=0"`
	KeyTTL time.Duration `env:"REDIS_KEY_TTL, default=0s"`
}

// UsesMongo reports whether any enabled component needs a MongoDB connection.
func (c *Config) UsesMongo() bool {
	return c.Auth.Mode == AuthModeAccounts || c.Audit.Sink == AuditSinkMongo
}

// UsesRedis reports whether browser-context storage lives in Redis.
func (c *Config) UsesRedis() bool {
	return c.StorageBackend == StorageRedis
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.Auth.Mode {
	case AuthModeMock, AuthModeAccounts:
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.Auth.Mode)
	}
	switch c.Audit.Sink {
	case AuditSinkLog, AuditSinkMongo:
	default:
		return fmt.Errorf("config: unknown AUDIT_SINK %q", c.Audit.Sink)
	}
	if c.Env == "production" && c.ContextSecret == "dev-context-secret" {
		return fmt.Errorf("config: CONTEXT_SECRET must be set in production")
	}
	return nil
}

// LoadFrom reads configuration through l with go-envconfig and validates it.
// Production passes envconfig.OsLookuper(); tests pass a map lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
