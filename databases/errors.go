package databases

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors for the case store. Callers branch on these: a version
// conflict is a retry-by-the-caseworker condition, not-found is a data
// condition, anything else is treated as a transport failure.
var (
	// ErrNotFound is returned when the referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a versioned update lost an
	// optimistic-concurrency race
	ErrVersionConflict = errors.New("record version conflict")
)

// isTransient reports whether an error is worth retrying on an idempotent
// read. Conflicts and not-found are never transient.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) {
		return false
	}
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
