package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/patchbay/pkg/domain"
)

// RunStoreContract exercises the behavior every Store implementation
// must share. Adapter tests call it with a freshly constructed store.
func RunStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("save and load round-trips", func(t *testing.T) {
		snap := contractSnapshot("roundtrip")
		require.NoError(t, store.Save(ctx, "contract/roundtrip", snap))

		loaded, err := store.Load(ctx, "contract/roundtrip")
		require.NoError(t, err)
		assert.Equal(t, snap, loaded)
	})

	t.Run("load of an unknown key returns the sentinel", func(t *testing.T) {
		_, err := store.Load(ctx, "contract/absent")
		require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("save overwrites", func(t *testing.T) {
		first := contractSnapshot("first")
		second := contractSnapshot("second")
		require.NoError(t, store.Save(ctx, "contract/overwrite", first))
		require.NoError(t, store.Save(ctx, "contract/overwrite", second))

		loaded, err := store.Load(ctx, "contract/overwrite")
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.Program)
	})

	t.Run("delete removes and stays idempotent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract/delete", contractSnapshot("delete")))
		require.NoError(t, store.Delete(ctx, "contract/delete"))

		_, err := store.Load(ctx, "contract/delete")
		require.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		require.NoError(t, store.Delete(ctx, "contract/delete"))
	})

	t.Run("keys lists stored snapshots", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract/keys/a", contractSnapshot("a")))
		require.NoError(t, store.Save(ctx, "contract/keys/b", contractSnapshot("b")))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "contract/keys/a")
		assert.Contains(t, keys, "contract/keys/b")
	})
}

// contractSnapshot builds a small fixture. The timestamp is fixed so
// comparisons survive JSON round-trips.
func contractSnapshot(program string) *Snapshot {
	return &Snapshot{
		Program:   program,
		Direction: "input",
		TakenAt:   time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC),
		Groups: []Group{
			{
				Name: "Tracks",
				Bundles: []Bundle{
					{
						Name:  "Drums",
						Color: "#b91c1c",
						Channels: []Channel{
							{Name: "audio_in 1", Type: "audio", Ports: []string{program + ":Drums/audio_in 1"}},
							{Name: "audio_in 2", Type: "audio", Ports: []string{program + ":Drums/audio_in 2"}},
						},
					},
				},
			},
			{
				Name: "Hardware",
				Bundles: []Bundle{
					{
						Name: "system",
						Channels: []Channel{
							{Name: "playback_1", Type: "audio", Ports: []string{"system:playback_1"}},
						},
					},
				},
			},
		},
	}
}
