package config

import "strings"

// DefaultConfig returns a Config populated entirely with defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields of cfg with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 9876
	}
	if cfg.NetworkBufferSize == 0 {
		cfg.NetworkBufferSize = 64 * 1024
	}
	if cfg.MaxConcurrentClients == 0 {
		cfg.MaxConcurrentClients = 100
	}
	if cfg.SessionTimeoutMinutes == 0 {
		cfg.SessionTimeoutMinutes = 30
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 1 * 1024 * 1024
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "./data/storage"
	}
	if cfg.MetadataPath == "" {
		cfg.MetadataPath = "./data/metadata"
	}

	applyLoggingDefaults(&cfg.Logging)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}
