package session

import "context"

// Store persists a single session snapshot between runs. There is no
// expiry: a stored snapshot stays valid until it is cleared or its
// backing user disappears.
type Store interface {
	// Load returns the stored snapshot, or nil if none is stored.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
}
