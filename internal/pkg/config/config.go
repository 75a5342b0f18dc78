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

	RefreshInterval  time.Duration `env:"REFRESH_INTERVAL,   default=5s"`
	MutationGuardTTL time.Duration `env:"MUTATION_GUARD_TTL, default=30s"`

	SIS   SISConfig
	Admin AdminConfig
	Audit AuditConfig
	Mongo MongoConfig
	Redis RedisConfig
	Kafka KafkaConfig
}

// SISConfig points at the upstream Student Information System.
type SISConfig struct {
	BaseURL     string        `env:"SIS_BASE_URL,     default=http://localhost:3000"`
	Timeout     time.Duration `env:"SIS_TIMEOUT,      default=10s"`
	TokenSecret string        `env:"SIS_TOKEN_SECRET"`
}

// AdminConfig is the identity written to audit records. There is no login,
// so every action is attributed to this actor.
type AdminConfig struct {
	User string `env:"ADMIN_USER, default=Admin"`
	Role string `env:"ADMIN_ROLE, default=Admin"`
}

type AuditConfig struct {
	// Backend is one of memory, redis or mongo.
	Backend string `env:"AUDIT_BACKEND, default=memory"`
	Key     string `env:"AUDIT_KEY,     default=adminAudit"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=counselor_dashboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// KafkaConfig enables the audit stream when Brokers is non-empty.
type KafkaConfig struct {
	Brokers    string `env:"KAFKA_BROKERS"`
	AuditTopic string `env:"KAFKA_AUDIT_TOPIC, default=admin-audit"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	switch cfg.Audit.Backend {
	case "memory", "redis", "mongo":
	default:
		return nil, fmt.Errorf("AUDIT_BACKEND: unsupported value %q", cfg.Audit.Backend)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL: must be positive, got %s", cfg.RefreshInterval)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
