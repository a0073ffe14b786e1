// Package config loads service configuration from the environment (and an
// optional .env file) into a typed Config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	SiteURL        string `mapstructure:"SITE_URL"`
	BaseURL        string `mapstructure:"BASE_URL"`
	Environment    string `mapstructure:"ENVIRONMENT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	StoreDriver    string `mapstructure:"STORE_DRIVER"`
	MongoURI       string `mapstructure:"MONGODB_URI"`
	DBName         string `mapstructure:"DB_NAME"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	ResendAPIKey   string `mapstructure:"RESEND_API_KEY"`
	FromEmail      string `mapstructure:"FROM_EMAIL"`
	AdminEmailsRaw string `mapstructure:"ADMIN_EMAILS"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
}

var defaults = map[string]string{
	"PORT":            "8080",
	"SITE_URL":        "http://localhost:8080",
	"BASE_URL":        "",
	"ENVIRONMENT":     "development",
	"LOG_LEVEL":       "info",
	"STORE_DRIVER":    DriverMongo,
	"MONGODB_URI":     "",
	"DB_NAME":         "really_simple_feedback",
	"SQLITE_PATH":     "feedback.db",
	"JWT_SECRET":      "",
	"RESEND_API_KEY":  "",
	"FROM_EMAIL":      "",
	"ADMIN_EMAILS":    "",
	"ALLOWED_ORIGINS": "*",
}

// Load reads .env (ignored when missing, env vars may be set directly) and
// the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// AdminEmails returns the lower-cased, comma separated ADMIN_EMAILS list.
func (c *Config) AdminEmails() []string {
	return splitList(strings.ToLower(c.AdminEmailsRaw))
}

func (c *Config) Origins() []string {
	origins := splitList(c.AllowedOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
