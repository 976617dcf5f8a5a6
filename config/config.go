// ABOUTME: Application configuration with XDG file storage and env overrides
// ABOUTME: Carries the database path, export directory and author defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config stores the application settings. The author block prefills the
// "Aufgestellt" line of new protocols.
type Config struct {
	DBPath          string `json:"db_path"`
	ExportDir       string `json:"export_dir"`
	AuthorFirstName string `json:"author_first_name"`
	AuthorLastName  string `json:"author_last_name"`
	AuthorCompany   string `json:"author_company"`
}

// Dir returns the XDG-compliant configuration directory.
func Dir() string {
	return filepath.Join(xdg.DataHome, "kadra")
}

// Path returns the XDG-compliant path of the configuration file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// DefaultDBPath returns the default sqlite database location.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "kadra", "kadra.db")
}

// Load reads the configuration file and applies environment overrides.
// A missing file yields the defaults. A .env file in the working directory
// is honored when present:
// - KADRA_DB_PATH
// - KADRA_EXPORT_DIR
// - KADRA_AUTHOR_FIRST_NAME
// - KADRA_AUTHOR_LAST_NAME
// - KADRA_AUTHOR_COMPANY.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:    DefaultDBPath(),
		ExportDir: ".",
	}

	f, err := os.Open(Path())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(Path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KADRA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("KADRA_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("KADRA_AUTHOR_FIRST_NAME"); v != "" {
		cfg.AuthorFirstName = v
	}
	if v := os.Getenv("KADRA_AUTHOR_LAST_NAME"); v != "" {
		cfg.AuthorLastName = v
	}
	if v := os.Getenv("KADRA_AUTHOR_COMPANY"); v != "" {
		cfg.AuthorCompany = v
	}
}
