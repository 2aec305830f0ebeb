package config

import (
	"fmt"
	"time"
	// Billing time zone must resolve in minimal containers.
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Entitlement store settings. STORE_BACKEND selects postgres or redis.
	StoreBackend       string `envconfig:"STORE_BACKEND" default:"postgres"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
	RedisAddr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword      string `envconfig:"REDIS_PASSWORD"`
	RedisDB            int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix     string `envconfig:"REDIS_KEY_PREFIX" default:"oneflex"`

	// Auth settings. JWT_SECRET_NAME takes precedence and is resolved through Secret Manager.
	JWTSecret       string   `envconfig:"JWT_SECRET"`
	JWTSecretName   string   `envconfig:"JWT_SECRET_NAME"`
	AdminAccountIDs []string `envconfig:"ADMIN_ACCOUNT_IDS"`

	// Billing settings
	Currency string `envconfig:"BILLING_CURRENCY" default:"UGX"`
	TimeZone string `envconfig:"BILLING_TIMEZONE" default:"Africa/Kampala"`

	// GCP settings
	GCPProjectID           string `envconfig:"GCP_PROJECT_ID"`
	PubSubEmulatorHost     string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubEntitlementTopic string `envconfig:"PUBSUB_ENTITLEMENT_TOPIC"`
	SecretManagerEndpoint  string `envconfig:"SECRET_MANAGER_ENDPOINT"`

	// Wallet export settings
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

// Process reads the environment without validating it. Tools that only need
// a subset of the settings use it instead of Load.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Load() (*Config, error) {
	cfg, err := Process()
	if err != nil {
		return nil, err
	}
	if cfg.StoreBackend != "postgres" && cfg.StoreBackend != "redis" {
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "postgres" && cfg.DBConnectionString == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is required for the postgres backend")
	}
	if cfg.JWTSecret == "" && cfg.JWTSecretName == "" {
		return nil, fmt.Errorf("one of JWT_SECRET or JWT_SECRET_NAME must be set")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location returns the time zone used for calendar-day expiry arithmetic.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load BILLING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// WalletExportEnabled reports whether an S3 bucket is configured for wallet exports.
func (c *Config) WalletExportEnabled() bool {
	return c.S3Bucket != ""
}
