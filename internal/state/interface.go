// internal/state/interface.go
package state

import "time"

// Interface defines the state store contract for dependency injection and testing.
type Interface interface {
	Get(key string, dst any) bool
	Set(key string, value any) error
	SetDeferred(key string, value any) error
	UpdatedAt(key string) (time.Time, bool)
	Close() error
}

// GetOr returns the value stored under key, or def when it is missing or unreadable.
func GetOr[T any](s Interface, key string, def T) T {
	var v T
	if !s.Get(key, &v) {
		return def
	}
	return v
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
