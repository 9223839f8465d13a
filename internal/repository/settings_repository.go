package repository

import "context"

// SettingsRepository is the key-value option store.
// Get returns "" with a nil error when the key has never been written.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent writes value only when key has no value yet.
	SetIfAbsent(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
