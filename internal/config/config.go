// Package config loads the client configuration from defaults, an optional
// config file (~/.larktalk/config.yaml), environment variables and bound
// command-line flags, in rising priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Viper keys. cmd/client binds its flags to these.
const (
	KeyAPIURL      = "api_url"
	KeyDataDir     = "data_dir"
	KeyTrustToken  = "trust_persisted_token"
	KeyLogFile     = "log_file"
	KeyEnvironment = "environment"
)

type Config struct {
	// APIURL is the base URL of the REST collaborator.
	APIURL string

	// DataDir holds the credential store. Empty means ~/.larktalk.
	DataDir string

	// TrustPersistedToken controls trust-on-read rehydration.
	TrustPersistedToken bool

	// LogFile receives structured logs; empty discards them.
	LogFile string

	// Environment is "development" or "production".
	Environment string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, "http://localhost:8080")
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyTrustToken, true)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyEnvironment, "development")
}

// Load reads the configuration. cfgFile overrides the default search path.
// A missing config file is fine; a malformed one is not.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Join(home, ".larktalk"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("LARKTALK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		APIURL:              v.GetString(KeyAPIURL),
		DataDir:             v.GetString(KeyDataDir),
		TrustPersistedToken: v.GetBool(KeyTrustToken),
		LogFile:             v.GetString(KeyLogFile),
		Environment:         v.GetString(KeyEnvironment),
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyAPIURL)
	}
	return cfg, nil
}

// IsDevelopment reports whether the development profile is active.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
