package ports

import "context"

// Storage defines the session-scoped key/value store used as local fallback
// while no LMS connection exists. Writes are last-writer-wins.
type Storage interface {
	// GetItem retrieves the value stored under key.
	// Returns domain.ErrItemNotFound if the key does not exist.
	GetItem(ctx context.Context, key string) (string, error)

	// SetItem stores value under key.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Keys lists the stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key of the storage session.
	Clear(ctx context.Context) error
}
