package config

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	// Storage. Both files are owned by this process for the whole run.
	CatalogPath string `conf:"default:products.json,env:CATALOG_PATH"`
	LedgerPath  string `conf:"default:transactions.json,env:LEDGER_PATH"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`
	ServiceName string `conf:"default:inventory,env:SERVICE_NAME"`

	// Presentation
	CurrencyPrefix string `conf:"default:Rp,env:CURRENCY_PREFIX"`

	// Credentials for the two built-in roles
	AdminUsername string `conf:"default:admin,env:ADMIN_USERNAME"`
	AdminPassword string `conf:"default:admin123,env:ADMIN_PASSWORD,noprint"`
	UserUsername  string `conf:"default:user,env:USER_USERNAME"`
	UserPassword  string `conf:"default:user123,env:USER_PASSWORD,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.AdminPassword == "admin123" {
		errs = append(errs, "ADMIN_PASSWORD must not be the built-in default")
	}

	if cfg.UserPassword == "user123" {
		errs = append(errs, "USER_PASSWORD must not be the built-in default")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
