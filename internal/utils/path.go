package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetConfigDir returns the path to the mathobj configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/.mathobj, unless overridden by MATHOBJ_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if confHome := os.Getenv("MATHOBJ_CONFIG_HOME"); confHome != "" {
		return confHome, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(cfg, ".mathobj"), nil
}

// GetCacheDir returns the path to the mathobj cache directory.
// The directory is located inside the user's cache directory
// as <UserCacheDir>/mathobj, unless overridden by MATHOBJ_CACHE_HOME.
func GetCacheDir() (string, error) {
	if cacheHome := os.Getenv("MATHOBJ_CACHE_HOME"); cacheHome != "" {
		return cacheHome, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "mathobj"), nil
}

// ReplaceTildeWithHome expands a leading '~' to the home directory
func ReplaceTildeWithHome(s string) (string, error) {
	if !strings.HasPrefix(s, "~") {
		return s, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(s, "~")), nil
}
