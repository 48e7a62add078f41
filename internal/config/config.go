// Package config provides configuration loading and structs for the Cookable server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cookable/cookable/internal/cluster"
	"github.com/cookable/cookable/internal/recommend"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool                    `yaml:"debug"`
	Server     ServerConfig            `yaml:"server"`
	Storage    StorageConfig           `yaml:"storage"`
	Clustering cluster.Config          `yaml:"clustering"`
	Scoring    recommend.ScoringConfig `yaml:"scoring"`
	Watch      WatchConfig             `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the corpus locations. DatasetPath is the source the
// model is built from (CSV, XLSX, or SQLite, chosen by extension);
// DatabasePath is the SQLite target for `cookable import`.
type StorageConfig struct {
	DatasetPath  string `yaml:"dataset_path"`
	DatabasePath string `yaml:"database_path"`
}

// WatchConfig holds dataset watch settings.
type WatchConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// EnabledOrDefault returns whether the dataset watcher runs; defaults to true.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatasetPath = expandPath(cfg.Storage.DatasetPath, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
