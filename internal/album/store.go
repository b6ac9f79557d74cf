package album

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS album_info (
    id TEXT PRIMARY KEY,
    title TEXT,
    last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS episodes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT,
    duration TEXT,
    title TEXT UNIQUE,
    annotation TEXT,
    url TEXT,
    created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Store manages one album's episode database.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// OpenPath initializes or connects to the album database at path. A .lock
// file beside the database is acquired for the lifetime of the store so two
// writer processes cannot edit the same album concurrently.
func OpenPath(path string) (*Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire album lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("open album %s: %w", path, ErrLocked)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path, lock: lock}, nil
}

// Close closes the database connection and releases the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// Title returns the album title recorded in album_info, if any.
func (s *Store) Title(ctx context.Context) (string, error) {
	var title sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT title FROM album_info LIMIT 1`).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read album title: %w", err)
	}
	return title.String, nil
}

// SetInfo records the album identifier and title.
func (s *Store) SetInfo(ctx context.Context, id, title string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO album_info (id, title, last_updated) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		id,
		title,
	)
	if err != nil {
		return fmt.Errorf("write album info: %w", err)
	}
	return nil
}

// Exists reports whether an episode with exactly this title is stored.
func (s *Store) Exists(ctx context.Context, title string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM episodes WHERE title = ?`, title).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check episode title: %w", err)
	}
	return true, nil
}

// Add inserts a new episode. The annotation defaults to a copy of the title.
// Callers are expected to check Exists first; a duplicate title surfaces as
// ErrDuplicateTitle via the unique constraint either way.
func (s *Store) Add(ctx context.Context, filename, duration, title, url string) (*Episode, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episodes (filename, duration, title, annotation, url, created, updated)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		filename,
		duration,
		title,
		title,
		url,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("add episode %q: %w", title, ErrDuplicateTitle)
		}
		return nil, fmt.Errorf("add episode: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches an episode by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Episode, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}
	return episode, nil
}

// UpdateAnnotation sets the annotation text and refreshes the updated
// timestamp. Equal text is a no-op.
func (s *Store) UpdateAnnotation(ctx context.Context, id int64, annotation string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Annotation == annotation {
		return nil
	}

	_, err = s.db.ExecContext(
		ctx,
		`UPDATE episodes SET annotation = ?, updated = ? WHERE id = ?`,
		annotation,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update annotation: %w", err)
	}
	return nil
}

// AppendAnnotation appends suffix to the annotation of every listed episode
// in a single transaction.
func (s *Store) AppendAnnotation(ctx context.Context, ids []int64, suffix string) error {
	if len(ids) == 0 || suffix == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, id := range ids {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE episodes SET annotation = annotation || ?, updated = ? WHERE id = ?`,
			suffix,
			now,
			id,
		)
		if err != nil {
			return fmt.Errorf("append annotation %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("episode %d: %w", id, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// List returns all episodes ordered by ascending id.
func (s *Store) List(ctx context.Context) ([]*Episode, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+episodeColumns+` FROM episodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []*Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}

// OrderedForDisplay returns all episodes with unannotated ones first. The
// sort is stable, so ties keep their ascending-id order.
func (s *Store) OrderedForDisplay(ctx context.Context) ([]*Episode, error) {
	episodes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(episodes, func(i, j int) bool {
		return displayKey(episodes[i]) < displayKey(episodes[j])
	})
	return episodes, nil
}

func displayKey(e *Episode) int {
	if e.Annotation != "" && e.Annotation == e.Filename {
		return 0
	}
	return 1
}

// Search returns episodes whose annotation contains keyword,
// case-insensitively, sorted by lowercased annotation descending. Titles and
// filenames are not searched.
func (s *Store) Search(ctx context.Context, keyword string) ([]*Episode, error) {
	if keyword == "" {
		return nil, nil
	}

	episodes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	matched := episodes[:0]
	for _, episode := range episodes {
		if episode.Annotation == "" {
			continue
		}
		if strings.Contains(strings.ToLower(episode.Annotation), needle) {
			matched = append(matched, episode)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Annotation) > strings.ToLower(matched[j].Annotation)
	})
	return matched, nil
}

const episodeColumns = "id, filename, duration, title, annotation, url, created, updated"

func scanEpisode(scanner interface{ Scan(dest ...any) error }) (*Episode, error) {
	var (
		id         int64
		filename   sql.NullString
		duration   sql.NullString
		title      sql.NullString
		annotation sql.NullString
		url        sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &filename, &duration, &title, &annotation, &url, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	episode := &Episode{
		ID:         id,
		Filename:   filename.String,
		Duration:   duration.String,
		Title:      title.String,
		Annotation: annotation.String,
		URL:        url.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		episode.Created = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		episode.Updated = updated
	}
	return episode, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed")
}
