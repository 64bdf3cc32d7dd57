package collection

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDBNil is returned when the collection was built without a database connection.
	ErrDBNil = errors.New("database connection is nil")
)
