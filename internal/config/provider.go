package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
)

const (
	defaultDataDir = ".opsgov"
	stateFileName  = "ledger.json"
	eventsFileName = "events.db"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		projectRoot = wd
	}

	// Load .env files first so ${VAR} references below resolve
	loadEnvFiles(projectRoot)

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = filepath.Join(projectRoot, defaultDataDir)
	}

	cfg := &config.RuntimeConfig{
		DataDir:        dataDir,
		StateFile:      filepath.Join(dataDir, stateFileName),
		EventsFile:     filepath.Join(dataDir, eventsFileName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	configFile := v.GetString("config")
	if configFile == "" {
		configFile = FindConfigFile(projectRoot)
	}
	if configFile != "" {
		file, err := LoadFileConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ConfigFile = configFile
		cfg.File = file
	}

	sender, name, err := ResolveSender(cfg.File, v.GetString("from"), v.GetString("private_key"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender: %w", err)
	}
	cfg.Sender = sender
	cfg.SenderName = name

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("OPSGOV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "1m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
