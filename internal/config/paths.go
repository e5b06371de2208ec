// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the per-user directory.
	GlobalDirName = ".huntarr"

	// HomeEnv overrides the per-user directory location.
	HomeEnv = "HUNTARR_HOME"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "HUNTARR_CONFIG"
)

// File names
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "console.log"
)

// GlobalDir returns the path to the per-user directory (~/.huntarr/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// ConfigFile returns the path to config.yaml.
func ConfigFile() (string, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path, nil
	}
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DefaultLogFile returns the path to the console log file.
func DefaultLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// EnsureGlobalDir creates the per-user directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
