package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	DBPath            string        `mapstructure:"db_path" yaml:"db_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	HistorySize       int           `mapstructure:"history_size" yaml:"history_size"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":4000",
		DBPath:            "arabchat.db",
		LogLevel:          "info",
		HistorySize:       50,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}
