package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchScenario_RerunsOnWriteAndStopsOnCancel(t *testing.T) {
	// GIVEN a scenario file under watch
	path := writeScenario(t, "version: 1.0.0\n")
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchScenario(ctx, path, func() error {
			calls.Add(1)
			return nil
		})
	}()

	// WHEN the file is rewritten (repeated until the watcher is attached)
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("version: 1.0.0\nhorizon: 20\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	// AND writes to sibling files are ignored
	time.Sleep(200 * time.Millisecond)
	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, calls.Load())

	// THEN cancelling the context ends the watch cleanly
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchScenario did not return after cancel")
	}
}

func TestWatchScenario_MissingDirectory_ReturnsError(t *testing.T) {
	err := watchScenario(context.Background(), filepath.Join(t.TempDir(), "absent", "s.yaml"), func() error { return nil })
	assert.Error(t, err)
}
