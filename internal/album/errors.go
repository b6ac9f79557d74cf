package album

import "errors"

var (
	// ErrDuplicateTitle reports an insert whose title already exists.
	ErrDuplicateTitle = errors.New("episode title already exists")
	// ErrNotFound reports an operation on a missing episode.
	ErrNotFound = errors.New("episode not found")
	// ErrLocked reports that another process holds the album writer lock.
	ErrLocked = errors.New("album database is locked by another process")
)
