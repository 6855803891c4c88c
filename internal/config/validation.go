package config

import "fmt"

// Validate rejects configurations the server cannot start with.
func Validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.NetworkBufferSize <= 0 {
		return fmt.Errorf("network_buffer_size must be positive, got %d", cfg.NetworkBufferSize)
	}
	if cfg.MaxConcurrentClients <= 0 {
		return fmt.Errorf("max_concurrent_clients must be positive, got %d", cfg.MaxConcurrentClients)
	}
	if cfg.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("session_timeout_minutes must be positive, got %d", cfg.SessionTimeoutMinutes)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.StoragePath == "" {
		return fmt.Errorf("storage_path must be set")
	}
	if cfg.MetadataPath == "" {
		return fmt.Errorf("metadata_path must be set")
	}

	switch cfg.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level must be one of DEBUG, INFO, WARN, ERROR, got %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	return nil
}
