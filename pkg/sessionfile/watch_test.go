package sessionfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/patchbay/pkg/sessionfile"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program: demo\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := sessionfile.Watch(ctx, path)
	require.NoError(t, err)

	// Give the watcher a moment to arm before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("program: changed\n"), 0o644))

	select {
	case name := <-events:
		require.Equal(t, path, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a modified session file")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program: demo\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := sessionfile.Watch(ctx, path)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x\n"), 0o644))

	select {
	case name := <-events:
		t.Fatalf("unexpected event for %s", name)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program: demo\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	events, err := sessionfile.Watch(ctx, path)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel must close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}
