package app

import (
	"github.com/gastropro/gastropro/pkg/logger"
)

// ConfigureLogging initialises the global logger based on configuration.
func ConfigureLogging(cfg *Config) error {
	level := "info"
	if cfg != nil && cfg.Server.LogLevel != "" {
		level = cfg.Server.LogLevel
	}
	return logger.Init(level)
}
