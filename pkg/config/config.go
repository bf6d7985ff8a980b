package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Store backend selection values.
const (
	StoreBackendFirestore = "firestore"
	StoreBackendMemory    = "memory"
)

// Config represents the application configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Store       StoreConfig
	Sheets      SheetsConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	Backend         string
	ProjectID       string
	CredentialsPath string
}

// SheetsConfig holds Google Sheets configuration for the form importer
type SheetsConfig struct {
	CredentialsPath string
	DefaultRange    string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics-related configuration
type MetricsConfig struct {
	Prefix string
}

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "hackabull-api"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Backend:         getEnv("STORE_BACKEND", StoreBackendFirestore),
			ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIRESTORE_CRED_PATH", ""),
		},
		Sheets: SheetsConfig{
			CredentialsPath: getEnv("SHEETS_CRED_PATH", ""),
			DefaultRange:    getEnv("SHEETS_DEFAULT_RANGE", "Form Responses 1!A:Z"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "hackabull"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that the selected store backend is usable. The firestore
// backend requires a project ID and an existing credential file; the sheets
// credential file is checked whenever it is configured.
func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendFirestore:
		if c.Store.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore store backend")
		}
		if c.Store.CredentialsPath == "" {
			return fmt.Errorf("FIRESTORE_CRED_PATH is required for the firestore store backend")
		}
		if _, err := os.Stat(c.Store.CredentialsPath); err != nil {
			return fmt.Errorf("firestore credential file %q not found: %w", c.Store.CredentialsPath, err)
		}
		if c.Sheets.CredentialsPath == "" {
			return fmt.Errorf("SHEETS_CRED_PATH is required for the firestore store backend")
		}
	case StoreBackendMemory:
		// Nothing to check; the sheets credential file stays optional and the
		// form sync endpoint is disabled without it.
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Sheets.CredentialsPath != "" {
		if _, err := os.Stat(c.Sheets.CredentialsPath); err != nil {
			return fmt.Errorf("sheets credential file %q not found: %w", c.Sheets.CredentialsPath, err)
		}
	}
	return nil
}

// LogConfig returns the configuration as zap logger fields
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_backend", c.Store.Backend),
		zap.String("firestore_project", c.Store.ProjectID),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
