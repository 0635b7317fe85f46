package storage

import "errors"

// ErrNotFound is returned when a lookup matches no entry.
var ErrNotFound = errors.New("entry not found")
