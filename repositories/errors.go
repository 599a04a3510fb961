package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceMissing is returned when a foreign key points at a missing row
	ErrReferenceMissing = errors.New("referenced record not found")
)

// ErrReferenced is returned when deleting a row that other rows still point at
var ErrReferenced = errors.New("record is still referenced")
