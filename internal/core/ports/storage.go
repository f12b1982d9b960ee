package ports

import "context"

// KeyValueStore is the durable local storage of one browser context.
// Each operation is an atomic single-key read or write.
type KeyValueStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete succeeds when the key is already absent.
	Delete(ctx context.Context, key string) error
}

// StoreFactory hands out the storage namespace of a browser context.
type StoreFactory interface {
	ForContext(contextID string) KeyValueStore
}
