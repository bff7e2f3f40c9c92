// Package yamlstore keeps config.Store values in a flat YAML file.
//
// Keys are written as-is, so "lock.timeout: 5s" stays a single top-level key.
// yaml.v3 marshals map keys alphabetically, which keeps the file stable under
// version control.
package yamlstore

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"issues-lite/internal/config"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// lockWait bounds how long Set and Unset wait for another writer.
const lockWait = 5 * time.Second

// YAMLStore is a config.Store backed by one YAML file.
type YAMLStore struct {
	path      string
	values    map[string]string
	overrides map[string]string
}

// New opens the config file at path. A missing file is an empty config;
// it is created by the first Set or Unset.
func New(path string) (*YAMLStore, error) {
	values, err := load(path)
	if err != nil {
		return nil, err
	}
	return &YAMLStore{
		path:      path,
		values:    values,
		overrides: map[string]string{},
	}, nil
}

// Path returns the config file location.
func (s *YAMLStore) Path() string {
	return s.path
}

func (s *YAMLStore) Get(key string) (string, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *YAMLStore) Set(key, value string) error {
	delete(s.overrides, key)
	return s.update(func(values map[string]string) {
		values[key] = value
	})
}

func (s *YAMLStore) Unset(key string) error {
	delete(s.overrides, key)
	return s.update(func(values map[string]string) {
		delete(values, key)
	})
}

// SetInMemory overrides key for the life of s. The override shadows the file
// value but is never written.
func (s *YAMLStore) SetInMemory(key, value string) {
	s.overrides[key] = value
}

// All returns the file values merged with in-memory overrides.
func (s *YAMLStore) All() map[string]string {
	out := maps.Clone(s.values)
	maps.Copy(out, s.overrides)
	return out
}

// update merges fn's change into the latest file contents under an exclusive
// lock, so writers in other processes are not lost.
func (s *YAMLStore) update(fn func(map[string]string)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockWait)
	defer cancel()
	lock := flock.New(s.path + ".lock")
	if _, err := lock.TryLockContext(ctx, 20*time.Millisecond); err != nil {
		return fmt.Errorf("locking %s: %w", s.path, err)
	}
	defer func() { _ = lock.Unlock() }()

	values, err := load(s.path)
	if err != nil {
		return err
	}
	fn(values)

	raw, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.values = values
	return nil
}

// load reads the flat map stored at path. Missing and empty files yield an
// empty map.
func load(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

var _ config.Store = (*YAMLStore)(nil)
