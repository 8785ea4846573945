package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/config"
)

// LoggerConfig holds configuration for logger setup
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// LogFormat represents available log formats
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

// String returns string representation of LogFormat
func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatConsole:
		return "console"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// FromLogConfig converts the application-level log section into a LoggerConfig
func FromLogConfig(cfg config.LogConfig) LoggerConfig {
	out := DefaultLoggerConfig()

	if level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && cfg.LogLevel != "" {
		out.Level = level
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		out.Format = FormatJSON
	case "text":
		out.Format = FormatText
	default:
		out.Format = FormatConsole
	}

	if cfg.LogFile != "" {
		out.EnableFile = true
		out.FilePath = cfg.LogFile
	}
	if cfg.MaxLogSizeMB > 0 {
		out.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		out.MaxBackups = cfg.MaxLogBackups
	}

	return out
}
