package snapshot

import "context"

// Store persists snapshots under caller-chosen keys.
//
// Load returns domain.ErrSnapshotNotFound for unknown keys. Delete is
// idempotent. Keys lists every stored key in no particular order.
type Store interface {
	Save(ctx context.Context, key string, snap *Snapshot) error
	Load(ctx context.Context, key string) (*Snapshot, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
