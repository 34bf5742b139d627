package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	w.Start()
	t.Cleanup(func() { w.Close() })
	return w
}

func waitChange(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case got := <-w.Changes:
		return got
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return ""
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	w := startWatcher(t, path)
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	assert.Equal(t, w.target, waitChange(t, w))
}

func TestWatcherReportsCreateAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.txt")

	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	waitChange(t, w)

	require.NoError(t, os.Remove(path))
	waitChange(t, w)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w := startWatcher(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o644))

	select {
	case got := <-w.Changes:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "a.txt"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	w.Start()

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherCloseEndsChannels(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "a.txt"), 0)
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Close())

	for _, closed := range []func() bool{
		func() bool { _, ok := <-w.Changes; return !ok },
		func() bool { _, ok := <-w.Errors; return !ok },
	} {
		assert.Eventually(t, closed, 3*time.Second, 10*time.Millisecond)
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "a.txt"), 0)
	assert.Error(t, err)
}
