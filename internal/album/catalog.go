package album

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const dirPrefix = "album_"

// DBPath returns the database file path for an album id under albumsDir.
func DBPath(albumsDir, albumID string) string {
	return filepath.Join(albumsDir, dirPrefix+albumID, dirPrefix+albumID+".db")
}

// Discover scans albumsDir for album_<id>/album_<id>.db directories and
// returns the albums found, sorted by id. Directories without a database
// file are skipped. Album titles are read from album_info when present and
// fall back to "album <id>".
func Discover(ctx context.Context, albumsDir string) ([]Info, error) {
	entries, err := os.ReadDir(albumsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read albums directory: %w", err)
	}

	var albums []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), dirPrefix) {
			continue
		}
		albumID := strings.TrimPrefix(entry.Name(), dirPrefix)
		if albumID == "" {
			continue
		}
		dbPath := DBPath(albumsDir, albumID)
		if _, err := os.Stat(dbPath); err != nil {
			continue
		}

		info := Info{
			ID:    albumID,
			Title: "album " + albumID,
			Path:  dbPath,
		}
		if title, err := readTitle(ctx, dbPath); err == nil && title != "" {
			info.Title = title
		}
		albums = append(albums, info)
	}

	sort.Slice(albums, func(i, j int) bool { return albums[i].ID < albums[j].ID })
	return albums, nil
}

// readTitle opens the album database read-only just long enough to fetch the
// title, so discovery does not take writer locks on every album.
func readTitle(ctx context.Context, dbPath string) (string, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var title sql.NullString
	err = db.QueryRowContext(ctx, `SELECT title FROM album_info LIMIT 1`).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return title.String, nil
}
