package core

import (
	"fmt"
	"strconv"
	"time"
)

// Properties is a flat, string-keyed property set. The resolution functions
// read from it and never write to it, so one set can safely configure any
// number of producers and consumers.
type Properties map[string]string

// Get returns the raw value for key, or "" when absent.
func (p Properties) Get(key string) string { return p[key] }

// GetOrDefault returns the value for key when the key is set, otherwise def.
// An explicitly set empty value counts as set; required-field checks are the
// callers' concern.
func (p Properties) GetOrDefault(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// GetInt parses the value for key as a decimal integer, returning def when
// the key is absent. A value that does not parse is reported as an
// ErrInvalidConfiguration.
func (p Properties) GetInt(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, key, err)
	}
	return n, nil
}

// GetMillis parses the value for key as an integer count of milliseconds,
// returning def when the key is absent.
func (p Properties) GetMillis(key string, def time.Duration) (time.Duration, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, key, err)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// GetBool parses the value for key as a boolean, returning def when the key
// is absent. Accepted spellings are those of strconv.ParseBool.
func (p Properties) GetBool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, key, err)
	}
	return b, nil
}
