// Package storage provides the on-disk layout and the persistent probe
// cache backed by BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "tbprobe"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/tbprobe/
// - Linux: ~/.local/share/tbprobe/
// - Windows: %APPDATA%/tbprobe/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Linux and other Unix-like: XDG_DATA_HOME, then ~/.local/share/
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetCacheDBDir returns the directory holding the BadgerDB probe cache.
func GetCacheDBDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "probecache")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}

// GetSyzygyDir returns the directory holding downloaded .rtbw/.rtbz files.
func GetSyzygyDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	syzygyDir := filepath.Join(dataDir, "syzygy")
	if err := os.MkdirAll(syzygyDir, 0755); err != nil {
		return "", err
	}
	return syzygyDir, nil
}
