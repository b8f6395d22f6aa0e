package config

import (
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// ToLoggingConfig converts the logging section into a logging.Config. A set
// File routes output to that file; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global logging section. Callers
// apply --debug and similar overrides on the copy.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
