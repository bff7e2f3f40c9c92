package config

import "os"

// Environment variable names for issues-lite configuration.
const (
	EnvDir   = "ISSUES_DIR"   // Path to the issue directory
	EnvColor = "ISSUES_COLOR" // Override the color mode
)

// ApplyEnvOverrides checks ISSUES_COLOR and overrides the corresponding
// config value in memory. Overrides are not persisted to the config file.
func ApplyEnvOverrides(s Store) {
	if color := os.Getenv(EnvColor); color != "" {
		s.SetInMemory(KeyColor, color)
	}
}
