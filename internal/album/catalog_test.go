package album_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"podtag/internal/album"
)

func seedAlbum(t *testing.T, albumsDir, id, title string) {
	t.Helper()

	path := album.DBPath(albumsDir, id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store, err := album.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer store.Close()

	if title != "" {
		if err := store.SetInfo(context.Background(), id, title); err != nil {
			t.Fatalf("SetInfo: %v", err)
		}
	}
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()
	albumsDir := t.TempDir()

	seedAlbum(t, albumsDir, "298736", "中国历史")
	seedAlbum(t, albumsDir, "100001", "")

	// Neither of these should surface: no album_ prefix, and no db file.
	if err := os.MkdirAll(filepath.Join(albumsDir, "notes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(albumsDir, "album_777"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	albums, err := album.Discover(ctx, albumsDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("album count = %d, want 2", len(albums))
	}
	if albums[0].ID != "100001" || albums[1].ID != "298736" {
		t.Fatalf("album order = [%s %s]", albums[0].ID, albums[1].ID)
	}
	if albums[0].Title != "album 100001" {
		t.Fatalf("fallback title = %q", albums[0].Title)
	}
	if albums[1].Title != "中国历史" {
		t.Fatalf("title = %q", albums[1].Title)
	}
	if albums[1].Path != album.DBPath(albumsDir, "298736") {
		t.Fatalf("path = %q", albums[1].Path)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	albums, err := album.Discover(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(albums) != 0 {
		t.Fatalf("album count = %d, want 0", len(albums))
	}
}
