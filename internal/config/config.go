// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
)

// dataDirectory is the default directory of the ROM images, relative to the
// executable.
const dataDirectory = "data"

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// DataPath returns the ROM image directory next to the running executable.
func DataPath() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(executable), dataDirectory), nil
}
