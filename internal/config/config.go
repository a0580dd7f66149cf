// Package config resolves the one database connection string the runner
// needs before any migration step runs. Resolution is explicit: the value
// is handed to the runner's entry point, never read from process-wide
// state inside the engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const defaultEnvironmentName = "local"

// EnvironmentConfig describes a single named environment from pingdeck.toml.
type EnvironmentConfig struct {
	DatabaseURL string `toml:"database_url"`
}

// Config represents the pingdeck.toml configuration file.
type Config struct {
	DefaultEnvironment string                       `toml:"default_environment"`
	Environments       map[string]EnvironmentConfig `toml:"environments"`
	ConfigFilePath     string                       `toml:"-"`
}

// LoadConfig loads pingdeck.toml from the current directory or any parent
// directory up to the project root. A missing file is not an error; the
// returned config is empty and resolution falls through to the other
// sources.
func LoadConfig() (*Config, error) {
	startDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	dir := startDir
	for {
		configPath := filepath.Join(dir, "pingdeck.toml")
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, err
			}

			var config Config
			if err := toml.Unmarshal(data, &config); err != nil {
				return nil, err
			}

			config.ConfigFilePath = configPath
			return &config, nil
		}

		if isProjectRoot(dir) {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return &Config{}, nil
}

// isProjectRoot checks if the directory is a project root based on common markers
func isProjectRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
		return true
	}
	return false
}

// ResolveDatabaseURL resolves the connection string with priority: explicit
// flag value > DATABASE_URL in the process environment > .env.<name> file >
// pingdeck.toml. A migration tool refuses to guess its target, so
// exhausting every source is an error rather than a built-in default.
func ResolveDatabaseURL(flagValue, envName string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if value := os.Getenv("DATABASE_URL"); value != "" {
		return value, nil
	}

	name := envName
	if name == "" && cfg != nil && cfg.DefaultEnvironment != "" {
		name = cfg.DefaultEnvironment
	}
	if name == "" {
		name = defaultEnvironmentName
	}

	dotenvPath := ".env." + name
	if cfg != nil && cfg.ConfigFilePath != "" {
		dotenvPath = filepath.Join(filepath.Dir(cfg.ConfigFilePath), dotenvPath)
	}
	if info, err := os.Stat(dotenvPath); err == nil && !info.IsDir() {
		values, err := godotenv.Read(dotenvPath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		if value := values["DATABASE_URL"]; value != "" {
			return value, nil
		}
	}

	if cfg != nil {
		if env, ok := cfg.Environments[name]; ok && env.DatabaseURL != "" {
			return env.DatabaseURL, nil
		}
	}

	return "", fmt.Errorf("no database URL configured for environment %q (set --database-url, DATABASE_URL, %s, or pingdeck.toml)", name, dotenvPath)
}
