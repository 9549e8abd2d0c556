package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SeedSourceBuiltin  = "builtin"
	SeedSourceDatabase = "database"
)

type HTTPConfig struct {
	Host string
	Port int
	// SimulatedLatency - искусственная задержка ответов прототипа.
	SimulatedLatency time.Duration
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SeedConfig struct {
	Source string
}

type MetricsConfig struct {
	Enabled bool
}

type Config struct {
	Environment string
	TimeZone    string
	HTTP        HTTPConfig
	DB          DBConfig
	Seed        SeedConfig
	Metrics     MetricsConfig

	location *time.Location
}

// Location - зона, в которой визиты делятся на сегодня, будущие и прошлые.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("METRICS_ENABLED", true)

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		TimeZone:    v.GetString("APP_TIMEZONE"),
		HTTP: HTTPConfig{
			Host:             v.GetString("HTTP_HOST"),
			Port:             v.GetInt("HTTP_PORT"),
			SimulatedLatency: v.GetDuration("SIMULATED_LATENCY"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Seed: SeedConfig{
			Source: strings.ToLower(strings.TrimSpace(v.GetString("SEED_SOURCE"))),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "Local"
	}
	if cfg.Seed.Source == "" {
		cfg.Seed.Source = SeedSourceBuiltin
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Seed.Source {
	case SeedSourceBuiltin:
	case SeedSourceDatabase:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required when SEED_SOURCE=%s", SeedSourceDatabase)
		}
	default:
		return fmt.Errorf("SEED_SOURCE must be %q or %q, got %q", SeedSourceBuiltin, SeedSourceDatabase, cfg.Seed.Source)
	}
	if cfg.HTTP.SimulatedLatency < 0 {
		return fmt.Errorf("SIMULATED_LATENCY must not be negative")
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	cfg.location = loc
	return nil
}
