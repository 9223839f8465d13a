package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envLoader reads typed environment variables. A value that fails to parse
// or validate falls back to the default and is recorded as a warning, so a
// typo in an optional knob never stops the relay from starting.
type envLoader struct {
	lookup   func(string) (string, bool)
	warnings []string
	fallback []string // フォールバックしたキー
}

func newEnvLoader(lookup func(string) (string, bool)) *envLoader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &envLoader{lookup: lookup}
}

func (l *envLoader) raw(key string) string {
	v, _ := l.lookup(key)
	return strings.TrimSpace(v)
}

func (l *envLoader) warn(key, value string, err error, def any) {
	l.warnings = append(l.warnings,
		fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", key, value, err, def))
	l.fallback = append(l.fallback, key)
}

// String returns the variable or def when unset or blank.
func (l *envLoader) String(key, def string) string {
	if v := l.raw(key); v != "" {
		return v
	}
	return def
}

// Int parses a base-10 integer, checked by validate when non-nil.
func (l *envLoader) Int(key string, def int, validate func(int) error) int {
	v := l.raw(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err == nil && validate != nil {
		err = validate(n)
	}
	if err != nil {
		l.warn(key, v, err, def)
		return def
	}
	return n
}

// Duration parses a Go duration string such as "10s" or "1h30m".
func (l *envLoader) Duration(key string, def time.Duration, validate func(time.Duration) error) time.Duration {
	v := l.raw(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err == nil && validate != nil {
		err = validate(d)
	}
	if err != nil {
		l.warn(key, v, err, def)
		return def
	}
	return d
}

// List splits a comma separated value, dropping blanks.
func (l *envLoader) List(key string) []string {
	v := l.raw(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// ValidateIntRange returns a validator accepting min..max inclusive.
func ValidateIntRange(min, max int) func(int) error {
	return func(n int) error {
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}
