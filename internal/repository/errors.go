package repository

import "errors"

// ErrNotFound indicates that no job record has the requested id
var ErrNotFound = errors.New("job not found")

// ErrStorageUnavailable wraps failures of the underlying storage engine
var ErrStorageUnavailable = errors.New("storage unavailable")

// IsNotFoundError checks if an error indicates a record was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorageUnavailable checks if an error came from the storage engine
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
