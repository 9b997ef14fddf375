// Package config loads rezeptex TOML configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds runtime configuration.
type Config struct {
	// StorePath is the SQLite store file.
	StorePath string `toml:"store_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// ExcludeSheets names worksheets that are never recipes.
	ExcludeSheets []string `toml:"exclude_sheets"`
	// TOCSheet is the table-of-contents sheet consulted for categories.
	TOCSheet string `toml:"toc_sheet"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		StorePath:     filepath.Join(home, ".rezeptex", "recipes.db"),
		LogLevel:      "info",
		ExcludeSheets: []string{"Inhaltsverzeichnis", "Vorlage"},
		TOCSheet:      "Inhaltsverzeichnis",
	}
}

// Load reads the config file at path, layered over defaults. A missing
// file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteSample writes the annotated sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
