package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/mcp-wordpress/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/mcp-wordpress"
	configFileName = "config.yaml"
)

// Environment variables that override file settings.
const (
	EnvURL       = "WORDPRESS_URL"
	EnvUsername  = "WORDPRESS_USERNAME"
	EnvPassword  = "WORDPRESS_PASSWORD"
	EnvToken     = "WORDPRESS_TOKEN"
	EnvTransport = "MCP_WORDPRESS_TRANSPORT"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from the given directory and applies
// environment overrides. The result is not validated; call Validate.
func LoadConfig(configPath string) (Config, error) {
	config, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	ApplyEnv(&config, os.LookupEnv)
	return config, nil
}

func loadFile(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig() // Start with default config

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, &ConfigurationError{
			FilePath:  configFilePath,
			ErrorType: ErrorTypeIO,
			Message:   err.Error(),
		}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return Config{}, &ConfigurationError{
			FilePath:    configFilePath,
			ErrorType:   ErrorTypeParse,
			Message:     err.Error(),
			Suggestions: []string{"check the YAML syntax and that durations use units, e.g. 30s"},
		}
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// ApplyEnv overrides cfg with the environment variables that are set.
// lookup has the signature of os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	overrides := []struct {
		name   string
		target *string
	}{
		{EnvURL, &cfg.Backend.URL},
		{EnvUsername, &cfg.Backend.Username},
		{EnvPassword, &cfg.Backend.Password},
		{EnvToken, &cfg.Backend.Token},
		{EnvTransport, &cfg.Server.Transport},
	}

	for _, o := range overrides {
		if v, ok := lookup(o.name); ok && v != "" {
			*o.target = v
			logging.Debug("ConfigLoader", "Using %s from environment", o.name)
		}
	}
}
