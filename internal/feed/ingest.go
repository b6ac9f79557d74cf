package feed

import (
	"context"
	"fmt"
	"log/slog"

	"podtag/internal/album"
)

// Result summarizes one ingestion run.
type Result struct {
	Processed int
	Added     int
	Skipped   int
}

// Ingest writes a parsed channel into an album store. Items whose title is
// already present are skipped; the episode title is the only identity a feed
// provides, so re-running ingestion is idempotent.
func Ingest(ctx context.Context, logger *slog.Logger, store *album.Store, albumID string, channel *Channel) (Result, error) {
	var result Result

	if channel.Title != "" {
		if err := store.SetInfo(ctx, albumID, channel.Title); err != nil {
			return result, fmt.Errorf("record album info: %w", err)
		}
	}

	for _, item := range channel.Items {
		result.Processed++

		exists, err := store.Exists(ctx, item.Title)
		if err != nil {
			return result, fmt.Errorf("check existing episode: %w", err)
		}
		if exists {
			result.Skipped++
			continue
		}

		if _, err := store.Add(ctx, item.Filename, item.Duration, item.Title, item.URL); err != nil {
			return result, fmt.Errorf("add episode %q: %w", item.Title, err)
		}
		result.Added++
		logger.Debug("episode added", "title", item.Title, "duration", item.Duration)
	}

	logger.Info("feed ingested",
		"album_id", albumID,
		"processed", result.Processed,
		"added", result.Added,
		"skipped", result.Skipped,
	)
	return result, nil
}
