// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabasePath    string
	ImportBatchSize int
	LogLevel        string
	LogFormat       string
}

// LoadConfig reads configuration from MONEYBOOK_* environment variables.
// A .env file in the working directory is honored when present.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MONEYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", defaultDatabasePath())
	v.SetDefault("import.batch.size", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	cfg := &Config{
		DatabasePath:    v.GetString("database.path"),
		ImportBatchSize: v.GetInt("import.batch.size"),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
	}
	if cfg.ImportBatchSize <= 0 {
		return nil, fmt.Errorf("import batch size must be positive, got %d", cfg.ImportBatchSize)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("log format must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "moneybook.db"
	}
	return filepath.Join(home, ".moneybook", "moneybook.db")
}
