package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"podtag/internal/config"
)

// Store manages vocabulary persistence backed by SQLite plus an in-memory
// mirror of the node and edge sets. The mirror is only updated after a
// successful commit.
type Store struct {
	db   *sql.DB
	path string

	nodes map[string]Node
	edges []Edge
}

// Open initializes or connects to the vocabulary database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.VocabularyDB)
}

// OpenPath initializes or connects to the vocabulary database at path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// foreign_keys stays off (the SQLite default): edges may reference names
	// that are not stored as nodes, and callers rely on that.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, nodes: make(map[string]Node)}
	ctx := context.Background()
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.loadCache(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path backing this store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) loadCache(ctx context.Context) error {
	nodes := make(map[string]Node)
	rows, err := s.db.QueryContext(ctx, `SELECT node, description, created FROM nodes`)
	if err != nil {
		return fmt.Errorf("load nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name       string
			desc       sql.NullString
			createdRaw sql.NullString
		)
		if err := rows.Scan(&name, &desc, &createdRaw); err != nil {
			return fmt.Errorf("scan node: %w", err)
		}
		nodes[name] = Node{Name: name, Description: desc.String, Created: parseTimestamp(createdRaw.String)}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate nodes: %w", err)
	}

	var edges []Edge
	edgeRows, err := s.db.QueryContext(ctx, `SELECT parent_node, child_node, created FROM edges`)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var (
			parent     string
			target     string
			createdRaw sql.NullString
		)
		if err := edgeRows.Scan(&parent, &target, &createdRaw); err != nil {
			return fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, Edge{Parent: parent, Target: target, Created: parseTimestamp(createdRaw.String)})
	}
	if err := edgeRows.Err(); err != nil {
		return fmt.Errorf("iterate edges: %w", err)
	}

	s.nodes = nodes
	s.edges = edges
	return nil
}

// UpsertNode inserts a node or replaces the description of an existing one.
func (s *Store) UpsertNode(ctx context.Context, name, description string) error {
	if name == "" {
		return errors.New("upsert node: name is empty")
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO nodes (node, description, created) VALUES (?, ?, ?)
         ON CONFLICT(node) DO UPDATE SET description = excluded.description`,
		name,
		description,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert node: %w", err)
	}

	node := Node{Name: name, Description: description, Created: now}
	if existing, ok := s.nodes[name]; ok {
		node.Created = existing.Created
	}
	s.nodes[name] = node
	return nil
}

// RenameNode atomically rewrites every edge mentioning oldName, deletes the
// node under oldName, and inserts it under newName with the given
// description. The call is a no-op when nothing would change.
func (s *Store) RenameNode(ctx context.Context, oldName, newName, description string) error {
	existing, ok := s.nodes[oldName]
	if !ok {
		return fmt.Errorf("rename node %q: %w", oldName, ErrNotFound)
	}
	if newName == "" {
		return errors.New("rename node: new name is empty")
	}
	if oldName == newName {
		if existing.Description == description {
			return nil
		}
		return s.UpsertNode(ctx, newName, description)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rename tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE edges SET parent_node = ? WHERE parent_node = ?`, newName, oldName); err != nil {
		return fmt.Errorf("rewrite parent edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE edges SET child_node = ? WHERE child_node = ?`, newName, oldName); err != nil {
		return fmt.Errorf("rewrite child edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE node = ?`, oldName); err != nil {
		return fmt.Errorf("delete old node: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO nodes (node, description, created) VALUES (?, ?, ?)`,
		newName,
		description,
		existing.Created.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert renamed node: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rename: %w", err)
	}

	delete(s.nodes, oldName)
	s.nodes[newName] = Node{Name: newName, Description: description, Created: existing.Created}
	for i := range s.edges {
		if s.edges[i].Parent == oldName {
			s.edges[i].Parent = newName
		}
		if s.edges[i].Target == oldName {
			s.edges[i].Target = newName
		}
	}
	return nil
}

// DeleteNode removes the node and every edge where it appears as parent or
// target, as a single transaction.
func (s *Store) DeleteNode(ctx context.Context, name string) error {
	if _, ok := s.nodes[name]; !ok {
		return fmt.Errorf("delete node %q: %w", name, ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges WHERE parent_node = ? OR child_node = ?`, name, name); err != nil {
		return fmt.Errorf("delete edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE node = ?`, name); err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	delete(s.nodes, name)
	kept := s.edges[:0]
	for _, edge := range s.edges {
		if edge.Parent != name && edge.Target != name {
			kept = append(kept, edge)
		}
	}
	s.edges = kept
	return nil
}

// AddEdge inserts the ordered pair parent -> target. Endpoints are not
// required to exist as nodes; callers that want both ends present create
// them first.
func (s *Store) AddEdge(ctx context.Context, parent, target string) error {
	if parent == target {
		return fmt.Errorf("edge %q -> %q: %w", parent, target, ErrInvalidEdge)
	}
	if s.hasEdge(parent, target) {
		return fmt.Errorf("edge %q -> %q: %w", parent, target, ErrDuplicateEdge)
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO edges (parent_node, child_node, created) VALUES (?, ?, ?)`,
		parent,
		target,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert edge: %w", err)
	}

	s.edges = append(s.edges, Edge{Parent: parent, Target: target, Created: now})
	return nil
}

// RemoveEdge deletes exactly the one ordered pair if present.
func (s *Store) RemoveEdge(ctx context.Context, parent, target string) error {
	if !s.hasEdge(parent, target) {
		return fmt.Errorf("edge %q -> %q: %w", parent, target, ErrNotFound)
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM edges WHERE parent_node = ? AND child_node = ?`, parent, target)
	if err != nil {
		return fmt.Errorf("delete edge: %w", err)
	}

	kept := s.edges[:0]
	for _, edge := range s.edges {
		if edge.Parent != parent || edge.Target != target {
			kept = append(kept, edge)
		}
	}
	s.edges = kept
	return nil
}

// Node returns the node under name from the in-memory mirror.
func (s *Store) Node(name string) (Node, bool) {
	node, ok := s.nodes[name]
	return node, ok
}

// Nodes returns a snapshot of all nodes sorted by name.
func (s *Store) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the current keyword vocabulary sorted by name.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.nodes))
	for name := range s.nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Edges returns a snapshot of the current edge set.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

func (s *Store) hasEdge(parent, target string) bool {
	for _, edge := range s.edges {
		if edge.Parent == parent && edge.Target == target {
			return true
		}
	}
	return false
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t
	}
	return time.Time{}
}
