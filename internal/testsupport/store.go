package testsupport

import (
	"testing"

	"podtag/internal/album"
	"podtag/internal/config"
	"podtag/internal/vocab"
)

// MustOpenVocab opens a vocab.Store for tests and registers cleanup.
func MustOpenVocab(t testing.TB, cfg *config.Config) *vocab.Store {
	t.Helper()

	store, err := vocab.Open(cfg)
	if err != nil {
		t.Fatalf("vocab.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenAlbum opens an album.Store at path for tests and registers cleanup.
func MustOpenAlbum(t testing.TB, path string) *album.Store {
	t.Helper()

	store, err := album.OpenPath(path)
	if err != nil {
		t.Fatalf("album.OpenPath: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
