package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Mail      MailConfig      `mapstructure:"mail"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug | release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl"`
}

type FeedConfig struct {
	PostsPerPage int `mapstructure:"posts_per_page"`
}

type RedisConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Load reads config.yaml from the working directory (if present) and merges
// MICROBLOG_* environment variables over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "app.db")
	v.SetDefault("auth.jwt_secret", "you-will-never-guess")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.reset_token_ttl", 600*time.Second)
	v.SetDefault("feed.posts_per_page", 25)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 25)
	v.SetDefault("mail.from", "no-reply@microblog.local")

	v.SetEnvPrefix("MICROBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
