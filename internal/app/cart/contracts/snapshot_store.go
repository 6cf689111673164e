package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
)

// Snapshot is the stored state of one cart slot.
type Snapshot struct {
	CartID    string
	Blob      []byte
	UpdatedAt time.Time
}

// SnapshotStore defines persistence for the single-slot cart snapshot.
// Repositories return mutations, they don't apply them (Golden Mutation
// Pattern); usecases collect mutations into a plan and commit atomically.
type SnapshotStore interface {
	// Load retrieves the stored blob for a cart id. A missing slot returns
	// an empty blob and no error: a cart that was never written is an empty
	// cart, not a failure.
	Load(ctx context.Context, cartID string) ([]byte, error)

	// SaveMut creates a mutation writing the full snapshot blob for the slot.
	SaveMut(cartID string, blob []byte) *spanner.Mutation

	// DeleteMut creates a mutation removing the slot entirely.
	DeleteMut(cartID string) *spanner.Mutation

	// ListStale returns ids of cart slots not written since the cutoff.
	// Used by the abandoned-cart cleanup tool.
	ListStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error)
}
