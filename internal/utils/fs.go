package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// LoadTOMLFile decodes a TOML file into target
func LoadTOMLFile(path string, target any) error {
	_, err := toml.DecodeFile(path, target)
	return err
}

// SaveTOMLFile saves a struct to a TOML file
func SaveTOMLFile(data any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(data)
}

// DefaultDataDir returns a writable per-user directory for searchkit state.
// Falls back to the working directory when no home dir is available.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Failed to get home directory: %v", err)
		return "."
	}
	return filepath.Join(homeDir, ".config", "searchkit")
}
