package config

import "time"

// Core config keys.
const (
	KeyColor       = "color"
	KeyLockTimeout = "lock.timeout"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultLockTimeout is used when lock.timeout is unset or invalid.
const DefaultLockTimeout = 5 * time.Second

// DefaultValues returns the default config map for the core keys.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyColor:       ColorAuto,
		KeyLockTimeout: DefaultLockTimeout.String(),
	}
}

// ApplyDefaults fills any missing core keys in s with their default values.
func ApplyDefaults(s Store) error {
	defaults := DefaultValues()
	all := s.All()
	for k, v := range defaults {
		if _, exists := all[k]; !exists {
			if err := s.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
