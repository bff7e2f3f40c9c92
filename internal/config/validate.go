package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// colorModes lists the accepted values of KeyColor.
var colorModes = []string{ColorAuto, ColorAlways, ColorNever}

// checkers validates the value of each known key.
var checkers = map[string]func(string) error{
	KeyColor: func(v string) error {
		if !slices.Contains(colorModes, v) {
			return fmt.Errorf("invalid value %q (allowed: %s)", v, strings.Join(colorModes, ", "))
		}
		return nil
	},
	KeyLockTimeout: func(v string) error {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("must be a positive duration such as 5s, got %q", v)
		}
		return nil
	},
}

// Problems returns one message per invalid known key, sorted by key.
// Unknown keys are always accepted.
func Problems(s Store) []string {
	var problems []string
	all := s.All()
	for _, key := range slices.Sorted(maps.Keys(checkers)) {
		v, ok := all[key]
		if !ok {
			continue
		}
		if err := checkers[key](v); err != nil {
			problems = append(problems, key+": "+err.Error())
		}
	}
	return problems
}
