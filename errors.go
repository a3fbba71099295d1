package bkgo

import "errors"

var (
	// ErrNotLoaded is returned when an operation requires a populated
	// matcher but no terms have been inserted or loaded yet.
	ErrNotLoaded = errors.New("terms not loaded")

	// ErrInvalidMaxDistance is returned when a search tolerance is
	// negative.
	ErrInvalidMaxDistance = errors.New("max distance must be non-negative")
)
