package app

import "fmt"

// Config holds all the necessary configuration for an App instance.
type Config struct {
	// ManifestsPath points at external manifest files. When empty, the
	// catalog embedded in the binary is used.
	ManifestsPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults for unset fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
