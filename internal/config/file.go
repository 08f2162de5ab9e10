package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// configFileNames are searched in order in the project root
var configFileNames = []string{"opsgov.toml", "opsgov.yaml", "opsgov.yml"}

// FindConfigFile returns the first config file present in projectRoot, or "" if none is.
func FindConfigFile(projectRoot string) string {
	for _, name := range configFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFileConfig reads a TOML or YAML config file, chosen by extension, and expands
// environment variables in sender fields.
func LoadFileConfig(path string) (*config.FileConfig, error) {
	var cfg config.FileConfig

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q", ext)
	}

	// Expand environment variables in all sender config string fields
	for name, sender := range cfg.Senders {
		sender.PrivateKey = os.ExpandEnv(sender.PrivateKey)
		sender.Address = os.ExpandEnv(sender.Address)
		cfg.Senders[name] = sender
	}

	return &cfg, nil
}

// loadEnvFiles loads .env and .env.local from projectRoot so config files and flags can
// reference keys kept out of version control.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}
