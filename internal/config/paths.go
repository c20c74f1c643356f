package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands a leading ~ or ~/ to the user's home directory.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	if p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return home
	}
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}

// findUserConfigFile returns the first existing user-level config file, or
// empty if none exists.
func findUserConfigFile() string {
	var candidates []string
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "taskdeck", "taskdeck.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".taskdeck.toml"))
	}
	return firstExisting(candidates)
}

// findProjectConfigFile returns the first existing config file in the
// current directory, or empty if none exists.
func findProjectConfigFile() string {
	return firstExisting([]string{"taskdeck.toml", ".taskdeck.toml"})
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
