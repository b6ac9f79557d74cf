package feed_test

import (
	"context"
	"path/filepath"
	"testing"

	"podtag/internal/feed"
	"podtag/internal/logging"
	"podtag/internal/testsupport"
)

func TestIngestSkipsExistingTitles(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenAlbum(t, filepath.Join(t.TempDir(), "album_ingest.db"))
	logger := logging.NewNop()

	channel := &feed.Channel{
		Title: "测试专辑",
		Items: []feed.Item{
			{Title: "第一集", Duration: "00:30:00", Filename: "episode_1_1.mp3", URL: "https://example.com/1.mp3"},
			{Title: "第二集", Duration: "00:40:00", Filename: "episode_2_2.mp3", URL: "https://example.com/2.mp3"},
		},
	}

	result, err := feed.Ingest(ctx, logger, store, "298736", channel)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Processed != 2 || result.Added != 2 || result.Skipped != 0 {
		t.Fatalf("first run = %+v", result)
	}

	title, err := store.Title(ctx)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "测试专辑" {
		t.Fatalf("album title = %q", title)
	}

	// Re-running the same feed adds nothing.
	channel.Items = append(channel.Items, feed.Item{
		Title: "第三集", Filename: "episode_3_3.mp3",
	})
	result, err = feed.Ingest(ctx, logger, store, "298736", channel)
	if err != nil {
		t.Fatalf("Ingest again: %v", err)
	}
	if result.Processed != 3 || result.Added != 1 || result.Skipped != 2 {
		t.Fatalf("second run = %+v", result)
	}

	episodes, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("episode count = %d, want 3", len(episodes))
	}
	if episodes[0].Annotation != episodes[0].Title {
		t.Fatalf("annotation = %q, want title %q", episodes[0].Annotation, episodes[0].Title)
	}
}
