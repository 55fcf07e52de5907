// ABOUTME: Standard filesystem paths for termweb configuration and logs
// ABOUTME: Resolves ~/.termweb/ and falls back to the working directory without a home

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".termweb"

// GlobalDir returns the user-global config directory (~/.termweb/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ConfigFile returns the path of the default config file.
func ConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// LogFile returns the default location for --log-file when given without a path.
func LogFile() string {
	return filepath.Join(GlobalDir(), "termweb.log")
}
