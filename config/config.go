// Package config provides configuration management for Wallflower.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration data.
// The consumer key and secret are never written to disk.
type Config struct {
	APIKey    string `json:"-" env:"FLICKR_API_KEY"`
	APISecret string `json:"-" env:"FLICKR_API_SECRET"`

	PhotoDir      string `json:"photo_dir" env:"WALLFLOWER_PHOTO_DIR"`
	CredentialKey string `json:"credential_key" env:"WALLFLOWER_CREDENTIAL_KEY"`
	TokenStore    string `json:"token_store" env:"WALLFLOWER_TOKEN_STORE"`
	Perms         string `json:"perms" env:"WALLFLOWER_PERMS"`

	Workers       int    `json:"workers" env:"WALLFLOWER_WORKERS"`
	MaxPages      int    `json:"max_pages" env:"WALLFLOWER_MAX_PAGES"`
	PerPage       int    `json:"per_page" env:"WALLFLOWER_PER_PAGE"`
	MinTakenDate  string `json:"min_taken_date" env:"WALLFLOWER_MIN_TAKEN_DATE"`
	ContentType   string `json:"content_type" env:"WALLFLOWER_CONTENT_TYPE"`
	PhotoSize     string `json:"photo_size" env:"WALLFLOWER_PHOTO_SIZE"`
	PrivacyFilter string `json:"privacy_filter,omitempty" env:"WALLFLOWER_PRIVACY_FILTER"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		PhotoDir:      DefaultPhotoDir,
		CredentialKey: DefaultCredentialKey,
		TokenStore:    TokenStoreFile,
		Perms:         DefaultPerms,
		Workers:       DefaultWorkers,
		MaxPages:      DefaultMaxPages,
		PerPage:       DefaultPerPage,
		MinTakenDate:  DefaultMinTakenDate,
		ContentType:   DefaultContentType,
		PhotoSize:     DefaultPhotoSize,
	}
}

// GetPath returns the path to the user's config directory
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// GetFilename returns the path to the user's config file
func GetFilename() string {
	return filepath.Join(GetPath(), "config.json")
}

// Load builds the configuration. Later sources win:
// defaults, the JSON file at path, .env files, then the environment.
// A missing file at path is not an error.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		if err := c.loadFromFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	for _, f := range EnvFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return c, nil
}

// loadFromFile loads configuration from the specified file
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.APIKey == "":
		return errors.New("FLICKR_API_KEY must be set")
	case c.APISecret == "":
		return errors.New("FLICKR_API_SECRET must be set")
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.MaxPages <= 0:
		return fmt.Errorf("max_pages must be positive, got %d", c.MaxPages)
	case c.PerPage <= 0:
		return fmt.Errorf("per_page must be positive, got %d", c.PerPage)
	case c.TokenStore != TokenStoreFile && c.TokenStore != TokenStoreKeyring:
		return fmt.Errorf("unknown token_store %q", c.TokenStore)
	}
	return nil
}

// Save writes the configuration to path as indented JSON.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config data: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
