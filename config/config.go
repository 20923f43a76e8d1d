package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	TrustedProxies    string `mapstructure:"TRUSTED_PROXIES"`

	// Data store. The URL scheme picks the backend (postgres:// or mongodb://).
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB    int           `mapstructure:"REDIS_QUEUE_DB"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	// Stripe.
	StripeKey           string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PublicBaseURL       string `mapstructure:"PUBLIC_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "catering")
	viper.SetDefault("MIGRATIONS_PATH", "database/migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CATALOG_CACHE_TTL", "10m")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("PUBLIC_BASE_URL", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Warnings lists settings that are missing but not fatal. The server still boots
// without them; the affected endpoints report an upstream error instead.
func (c Config) Warnings() []string {
	var warnings []string
	if c.DatabaseURL == "" {
		warnings = append(warnings, "DATABASE_URL not set: bookings are not persisted and catalogs use fallback data")
	}
	if c.StripeKey == "" {
		warnings = append(warnings, "STRIPE_SECRET_KEY not set: checkout and refunds are disabled")
	}
	if c.StripeWebhookSecret == "" {
		warnings = append(warnings, "STRIPE_WEBHOOK_SECRET not set: every webhook will be rejected")
	}
	return warnings
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	out := splitList(c.AllowedOrigins)
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Proxies lists the TRUSTED_PROXIES addresses or CIDRs. Empty means client
// IP headers are ignored and the peer address is used.
func (c Config) Proxies() []string {
	return splitList(c.TrustedProxies)
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
