package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcheck/history"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	store, err := history.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(Config{DataDir: dir, Store: store})
	t.Cleanup(s.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	before := testutil.ToFloat64(watchEventsTotal)
	path := filepath.Join(dir, "part.nc")

	// The first write can land before the watcher is registered, so
	// keep touching the file until an event comes through.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("O1\nG1 X5 F500\nM30\n"), 0644)
		return testutil.ToFloat64(watchEventsTotal) > before
	}, 5*time.Second, 50*time.Millisecond)

	// The changed file was re-analyzed and recorded.
	require.Eventually(t, func() bool {
		runs, err := store.Recent(1)
		return err == nil && len(runs) == 1
	}, 5*time.Second, 50*time.Millisecond)

	runs, err := store.Recent(1)
	require.NoError(t, err)
	assert.Equal(t, path, runs[0].File)
	assert.True(t, runs[0].Passed)

	cancel()
	require.NoError(t, <-done)
}

func TestWatched(t *testing.T) {
	s, _ := newTestServer(t)

	assert.True(t, s.watched(filepath.Join("data", "part.nc")))
	assert.True(t, s.watched("PART.NC"))
	assert.False(t, s.watched("readme.md"))
	assert.False(t, s.watched("runs.db"))
}
