package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContentWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, CollectionNews), 0o755))

	changed := make(chan struct{}, 16)
	w, err := NewContentWatcher(dir, func() { changed <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, filepath.Join(dir, CollectionNews, "x.md"), "---\nslug: x\n---\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestContentWatcher_MissingDir(t *testing.T) {
	_, err := NewContentWatcher(filepath.Join(t.TempDir(), "missing"), func() {})
	require.Error(t, err)
}
