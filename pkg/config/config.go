// Package config provides a reusable loader for the Arweave client's
// configuration files and environment variables, generalized from
// Synnergy's pkg/config loader: a mapstructure-tagged struct, a package
// var holding the last-loaded values, and an environment overlay.
package config

import (
	"time"

	"github.com/spf13/viper"

	"arweave-go/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for the Arweave client.
type Config struct {
	Gateway struct {
		BaseURL    string        `mapstructure:"base_url" json:"base_url"`
		TimeoutRaw string        `mapstructure:"timeout" json:"timeout"`
		Timeout    time.Duration `mapstructure:"-" json:"-"`
	} `mapstructure:"gateway" json:"gateway"`

	Wallet struct {
		KeyFile string `mapstructure:"key_file" json:"key_file"`
	} `mapstructure:"wallet" json:"wallet"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load.
var AppConfig Config

// Defaults applied when no config file/env var supplies a value.
const (
	defaultBaseURL = "https://arweave.net"
	defaultTimeout = 30 * time.Second
	defaultLevel   = "info"
)

// Load reads an optional YAML config file (searched in "." and "./config")
// and merges ARWEAVE_-prefixed environment variable overrides. Missing
// config files are not an error: defaults apply.
func Load(configName string) (*Config, error) {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("gateway.base_url", defaultBaseURL)
	viper.SetDefault("gateway.timeout", defaultTimeout.String())
	viper.SetDefault("logging.level", defaultLevel)

	viper.SetEnvPrefix("ARWEAVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}

	d, err := time.ParseDuration(AppConfig.Gateway.TimeoutRaw)
	if err != nil {
		d = defaultTimeout
	}
	AppConfig.Gateway.Timeout = d

	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ARWEAVE_CONFIG_NAME
// environment variable, defaulting to "default".
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ARWEAVE_CONFIG_NAME", "default"))
}
