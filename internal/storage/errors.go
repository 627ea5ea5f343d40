package storage

import "errors"

// Sentinel errors for rack persistence.
var (
	// ErrNotFound is returned when no rack is saved under a name.
	ErrNotFound = errors.New("rack not found")

	// ErrMalformed is returned when a save file is not a valid rack document.
	ErrMalformed = errors.New("malformed rack file")

	// ErrInvalidName is returned for names that cannot map to a single file.
	ErrInvalidName = errors.New("invalid rack name")
)
