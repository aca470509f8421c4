package statsdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateLeagueName indicates a league with the same name already exists.
	ErrDuplicateLeagueName = errors.New("league name already exists")
)
