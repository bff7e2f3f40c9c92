package config

// Store is a flat key/value view of config.yaml. Dotted keys such as
// "lock.timeout" are plain strings, not paths into nested maps.
type Store interface {
	Get(key string) (string, bool)
	// Set and Unset persist immediately.
	Set(key, value string) error
	Unset(key string) error
	// SetInMemory overrides a value for this process only; environment
	// overrides go through here so they never reach the file.
	SetInMemory(key, value string)
	// All returns a copy of every stored pair.
	All() map[string]string
}

// Lookup returns the value of key from s, or its entry in DefaultValues when
// s is nil or the key is unset.
func Lookup(s Store, key string) string {
	if s != nil {
		if v, ok := s.Get(key); ok {
			return v
		}
	}
	return DefaultValues()[key]
}
