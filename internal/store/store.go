// Package store provides the flat key-value persistence the engine depends on.
package store

import (
	"context"

	"github.com/spf13/cast"
)

// Persisted keys. The store is a flat string-keyed map; structured values
// (the alert rule list) are JSON-encoded by their owners.
const (
	KeyAlertRules        = "alert_rules"
	KeySelectedMetal     = "selected_metal"
	KeySelectedCarat     = "selected_carat"
	KeySelectedUnit      = "selected_unit"
	KeyThemeDark         = "theme_dark"
	KeyEmailMasked       = "email_masked"
	KeyEmailAddress      = "email_address"
	KeyLastDailyNotified = "last_daily_notification"
)

// KVStore is the injected persistence boundary. Implementations are
// best-effort local stores; callers treat absence as a valid state.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// GetBool reads a boolean flag from the store, defaulting to false on
// absence or parse failure.
func GetBool(ctx context.Context, kv KVStore, key string) bool {
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return cast.ToBool(v)
}

// GetInt reads an integer from the store, returning def when absent or
// unparsable.
func GetInt(ctx context.Context, kv KVStore, key string, def int) int {
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// GetString reads a string from the store, returning def when absent.
func GetString(ctx context.Context, kv KVStore, key, def string) string {
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	return v
}
