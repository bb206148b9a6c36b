package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".highlight"

// DataDir returns the base data directory for highlight.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// CoreConfigPath returns the path to the TOML configuration file.
func CoreConfigPath() (string, error) {
	return dataPath("config.toml")
}

// TokenPath returns the path to the API token file.
func TokenPath() (string, error) {
	return dataPath("token")
}

// StatePath returns the path to the persisted UI state file.
func StatePath() (string, error) {
	return dataPath("state.json")
}

// StateDBPath returns the path to the bbolt state database.
func StateDBPath() (string, error) {
	return dataPath("state.db")
}

// KeymapPath returns the path to the key override file.
func KeymapPath() (string, error) {
	return dataPath("keymap.json")
}

func UILogPath() (string, error) {
	return dataPath("ui.log")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
