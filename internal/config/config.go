package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string `env:"APP_ENV, default=dev"`
	Port        string `env:"PORT, default=8080"`
	DatabaseURL string `env:"DATABASE_URL, default=clinicbook.db"`
	JWTSecret   string `env:"JWT_SECRET, default=change-me-jwt-secret"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	LogPretty   bool   `env:"LOG_PRETTY, default=false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`
	// TrustedProxies may set X-Forwarded-For; empty means the peer address
	// is the client IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Schedule  ScheduleConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	RateLimit RateLimitConfig
}

// ScheduleConfig describes the deployment-wide master list of slots.
type ScheduleConfig struct {
	TimeZone string        `env:"TIMEZONE, default=America/Sao_Paulo"`
	Open     string        `env:"SLOT_OPEN, default=08:00"`
	Close    string        `env:"SLOT_CLOSE, default=18:00"`
	Step     time.Duration `env:"SLOT_STEP, default=30m"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB, default=0"`
	CacheTTL time.Duration `env:"AVAILABILITY_CACHE_TTL, default=2m"`
}

type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=clinicbook.events"`
}

type RateLimitConfig struct {
	BookingsPerSecond float64 `env:"BOOKING_RATE_LIMIT, default=2"`
	Burst             int     `env:"BOOKING_RATE_BURST, default=5"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the time zone slots and calendar days are expressed in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Schedule.TimeZone)
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Schedule.Step <= 0 {
		return fmt.Errorf("SLOT_STEP must be > 0")
	}
	if _, err := time.LoadLocation(cfg.Schedule.TimeZone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Schedule.TimeZone, err)
	}
	if cfg.Redis.Addr != "" && cfg.Redis.CacheTTL <= 0 {
		return fmt.Errorf("AVAILABILITY_CACHE_TTL must be > 0")
	}
	if cfg.RateLimit.BookingsPerSecond <= 0 {
		return fmt.Errorf("BOOKING_RATE_LIMIT must be > 0")
	}
	if cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("BOOKING_RATE_BURST must be >= 1")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
