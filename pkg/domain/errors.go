package domain

import "errors"

// ErrSnapshotNotFound is returned when a snapshot key cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")
