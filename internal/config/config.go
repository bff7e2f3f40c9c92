// Package config handles issues-lite configuration: locating the issue
// directory, the flat key/value settings stored in its config.yaml, defaults
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const (
	// DirName is the issue directory looked for when no path is given.
	DirName = ".issues"
	// FileName is the config file inside the issue directory.
	FileName = "config.yaml"
)

// Paths captures resolved locations for issues and config.
type Paths struct {
	IssuesDir  string // directory holding the *.md issue files
	ConfigFile string // path to <IssuesDir>/config.yaml
}

func pathsFor(dir string) Paths {
	return Paths{
		IssuesDir:  dir,
		ConfigFile: filepath.Join(dir, FileName),
	}
}

// ResolvePaths locates the issue directory.
// Precedence: explicit path > ISSUES_DIR > nearest .issues directory walking
// up from the working directory > .issues in the working directory. Only an
// explicit path or ISSUES_DIR has to exist already; the fallback is created
// on first write.
func ResolvePaths(path string) (Paths, error) {
	if path == "" {
		path = os.Getenv(EnvDir)
	}
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return Paths{}, fmt.Errorf("cannot access issues directory %s: %w", path, err)
		}
		if !info.IsDir() {
			return Paths{}, fmt.Errorf("issues path is not a directory: %s", path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return Paths{}, fmt.Errorf("resolving path: %w", err)
		}
		return pathsFor(abs), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Paths{}, fmt.Errorf("cannot get current directory: %w", err)
	}
	if dir, ok := FindDir(cwd); ok {
		return pathsFor(dir), nil
	}
	return pathsFor(filepath.Join(cwd, DirName)), nil
}

// FindDir walks up from start looking for a DirName directory.
func FindDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Color returns the configured color mode, falling back to auto for missing
// or unknown values.
func Color(s Store) string {
	if v := Lookup(s, KeyColor); slices.Contains(colorModes, v) {
		return v
	}
	return ColorAuto
}

// LockTimeout returns the configured lock timeout, falling back to the
// default for missing or unparseable values.
func LockTimeout(s Store) time.Duration {
	d, err := time.ParseDuration(Lookup(s, KeyLockTimeout))
	if err != nil || d <= 0 {
		return DefaultLockTimeout
	}
	return d
}
