package vocab

import "errors"

var (
	// ErrInvalidEdge reports an attempt to link a node to itself.
	ErrInvalidEdge = errors.New("edge endpoints must differ")
	// ErrDuplicateEdge reports an ordered pair that already exists.
	ErrDuplicateEdge = errors.New("edge already exists")
	// ErrNotFound reports an operation on a missing node or edge.
	ErrNotFound = errors.New("not found")
)
