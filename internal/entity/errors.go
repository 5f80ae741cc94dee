package entity

import "errors"

var (
	// ErrDataUnavailable means the aggregate catalog read failed entirely.
	// Callers must surface a load failure, never an empty catalog.
	ErrDataUnavailable = errors.New("portal data unavailable")

	// ErrSyncFailure means a favorites write did not persist. The stored
	// set is unchanged; callers keep their optimistic local state.
	ErrSyncFailure = errors.New("favorites sync failed")

	ErrNotFound = errors.New("not found")
)
