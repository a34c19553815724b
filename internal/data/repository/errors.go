package repository

import "errors"

// ErrDuplicate is returned when an insert or update hits a unique constraint
// that callers are expected to handle (plate numbers, one review per booking).
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned by conditional writes that matched no row.
var ErrNotFound = errors.New("record not found")
