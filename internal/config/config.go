package config

import (
	"strings"
	"time"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration is the root application configuration loaded from
// config/config.yaml with environment variable overrides (GYMFLOW_*)
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Analytics  AnalyticsConfig  `mapstructure:"analytics"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" default:"api"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:":8080"`
}

type AuthConfig struct {
	Provider string         `mapstructure:"provider" default:"supabase"`
	Secret   string         `mapstructure:"secret"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
	AnonKey    string `mapstructure:"anon_key"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" default:"localhost"`
	Port                   int    `mapstructure:"port" default:"5432"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode" default:"disable"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" default:"5"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" default:"60"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address" default:"localhost:6379"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" default:"0"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" default:"true"`
	Type    string `mapstructure:"type" default:"inmemory"`
}

type LoggingConfig struct {
	Level          types.LogLevel `mapstructure:"level" default:"info"`
	FluentdEnabled bool           `mapstructure:"fluentd_enabled"`
	FluentdHost    string         `mapstructure:"fluentd_host"`
	FluentdPort    int            `mapstructure:"fluentd_port"`
	SentryDSN      string         `mapstructure:"sentry_dsn"`
}

type AnalyticsConfig struct {
	// Store selects where raw signup and membership rows are read from:
	// "postgres" (direct SQL) or "supabase" (PostgREST)
	Store string `mapstructure:"store" default:"postgres"`

	// RosterCacheTTL bounds how long a tenant's raw roster snapshot may be
	// served from cache. Derived series are always recomputed per request.
	RosterCacheTTL time.Duration `mapstructure:"roster_cache_ttl" default:"30s"`
}

// NewConfig loads configuration from file and environment
func NewConfig() (*Configuration, error) {
	// Load .env if present; ignore error as env vars may come from the host
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GYMFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.RunModeAPI))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("auth.provider", "supabase")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("analytics.store", "postgres")
	v.SetDefault("analytics.roster_cache_ttl", "30s")
}

// Validate checks cross-field constraints that viper cannot express
func (c *Configuration) Validate() error {
	if err := c.Deployment.Mode.Validate(); err != nil {
		return err
	}
	if c.Analytics.Store != "postgres" && c.Analytics.Store != "supabase" {
		return ierr.NewError("invalid analytics store").
			WithHint("analytics.store must be one of: postgres, supabase").
			WithReportableDetails(map[string]interface{}{
				"store": c.Analytics.Store,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.Analytics.Store == "supabase" && c.Supabase.BaseURL == "" {
		return ierr.NewError("supabase base url is required").
			WithHint("Set supabase.base_url when analytics.store is supabase").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a minimal configuration suitable for scripts and
// tests that never touch external systems
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.RunModeAPI},
		Server:     ServerConfig{Address: ":8080"},
		Cache:      CacheConfig{Enabled: true, Type: "inmemory"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Analytics: AnalyticsConfig{
			Store:          "postgres",
			RosterCacheTTL: 30 * time.Second,
		},
	}
}
