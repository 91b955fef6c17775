package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the Pagesmith data directory.
// - Windows: %APPDATA%\pagesmith
// - Other OS: ~/.pagesmith
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "pagesmith")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagesmith"
	}
	return filepath.Join(home, ".pagesmith")
}

// DBPath returns the path to the SQLite usage database.
func DBPath() string {
	return filepath.Join(DataDir(), "usage.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
