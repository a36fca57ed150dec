package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"autoradio/internal/export"
)

// Config contains the program configuration
type Config struct {
	OutputDir      string `yaml:"output_dir"`
	Bitrate        string `yaml:"bitrate"`
	Channels       int    `yaml:"channels"`
	Normalization  string `yaml:"normalization"`
	StripMetadata  bool   `yaml:"strip_metadata"`
	Album          string `yaml:"album"`
	MaxTitleLength int    `yaml:"max_title_length"`
	CleanOutput    bool   `yaml:"clean_output"`
	KeepTemp       bool   `yaml:"keep_temp"`
	// Theme is presentation state for a future UI shell. The pipeline
	// never reads it; it is only loaded and written back on save.
	Theme string `yaml:"theme"`
	Verbose        bool   `yaml:"verbose"`
	DryRun         bool   `yaml:"dry_run"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		OutputDir:      filepath.Join(homeDir(), "PODCASTS"),
		Bitrate:        "128k",
		Channels:       2,
		Normalization:  string(export.NormSinglePass),
		StripMetadata:  true,
		Album:          "PODCASTS",
		MaxTitleLength: 15,
		CleanOutput:    false,
		Theme:          "Midnight Garage",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Bitrate, validation.Required,
			validation.In("96k", "128k", "192k", "256k", "320k")),
		validation.Field(&c.Channels, validation.Required, validation.In(1, 2)),
		validation.Field(&c.Normalization, validation.Required,
			validation.In(
				string(export.NormNone),
				string(export.NormSinglePass),
				string(export.NormTwoPass),
			)),
		validation.Field(&c.MaxTitleLength, validation.Min(0)),
	)
}

// Profile builds the export profile this configuration describes.
func (c *Config) Profile() export.Profile {
	return export.Profile{
		Bitrate:       c.Bitrate,
		Channels:      c.Channels,
		Normalization: export.Mode(c.Normalization),
		StripMetadata: c.StripMetadata,
		Album:         c.Album,
		MaxTitleLen:   c.MaxTitleLength,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.OutputDir = ExpandHome(cfg.OutputDir)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./autoradio.yaml",
		"./autoradio.yml",
		filepath.Join(home, ".config", "autoradio", "config.yaml"),
		filepath.Join(home, ".config", "autoradio", "config.yml"),
		filepath.Join(home, ".autoradio.yaml"),
		filepath.Join(home, ".autoradio.yml"),
	}

	for _, path := range locations {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "autoradio", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "autoradio", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
