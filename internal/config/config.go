// Package config loads the cloudvault server configuration from defaults,
// an optional file, and environment variables, in that order of precedence
// (lowest to highest).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls internal/logger behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Config is the full set of options recognized by the server.
type Config struct {
	// Port is the TCP port the acceptor listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// NetworkBufferSize is the socket and per-read chunk buffer in bytes.
	NetworkBufferSize int `mapstructure:"network_buffer_size" yaml:"network_buffer_size"`

	// MaxConcurrentClients is the admission cap enforced by the session manager.
	MaxConcurrentClients int `mapstructure:"max_concurrent_clients" yaml:"max_concurrent_clients"`

	// SessionTimeoutMinutes is the inactivity cutoff enforced by the timeout sweep.
	SessionTimeoutMinutes int `mapstructure:"session_timeout_minutes" yaml:"session_timeout_minutes"`

	// ChunkSize is the upload/download chunk size in bytes.
	ChunkSize int64 `mapstructure:"chunk_size" yaml:"chunk_size"`

	// StoragePath is the root directory for file bytes.
	StoragePath string `mapstructure:"storage_path" yaml:"storage_path"`

	// MetadataPath is the directory holding the catalog JSON snapshots.
	MetadataPath string `mapstructure:"metadata_path" yaml:"metadata_path"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Load loads configuration from an optional file path, environment
// variables (CLOUDVAULT_*), and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	// AutomaticEnv only consults keys viper already knows, so bind every
	// recognized key for CLOUDVAULT_* variables to apply without a file.
	for _, key := range []string{"port", "network_buffer_size", "max_concurrent_clients",
		"session_timeout_minutes", "chunk_size", "storage_path", "metadata_path",
		"logging.level", "logging.format", "logging.output"} {
		_ = v.BindEnv(key)
	}

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("CLOUDVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cloudvault")
		v.SetConfigType("yaml")
	}
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config file: %w", err)
	}
	return true, nil
}
