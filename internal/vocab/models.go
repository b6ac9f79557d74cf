package vocab

import "time"

// Node is a named vocabulary term with a free-text description. The name is
// both the primary key and the display label.
type Node struct {
	Name        string
	Description string
	Created     time.Time
}

// Edge is a directed parent-to-child relationship between two node names.
// Edges reference names by value; renaming or deleting a node cascades to
// every edge mentioning it.
type Edge struct {
	Parent  string
	Target  string
	Created time.Time
}
