package vocab

import (
	"context"
	"fmt"
)

// The table and column names are a contract shared with any tool that reads
// the vocabulary database directly. Do not rename them casually.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS nodes (
    node TEXT PRIMARY KEY,
    description TEXT,
    created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS edges (
    parent_node TEXT,
    child_node TEXT,
    created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (parent_node, child_node),
    FOREIGN KEY (parent_node) REFERENCES nodes (node),
    FOREIGN KEY (child_node) REFERENCES nodes (node)
);
`

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
