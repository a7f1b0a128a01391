package repositories

import "errors"

// Sentinel errors returned by the stores. Services translate these at
// their boundary rather than matching on error strings.
var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateAccount is returned when an account with the given
	// identifier already exists. The identity service absorbs this as a
	// lost provisioning race; it is never surfaced to callers.
	ErrDuplicateAccount = errors.New("account already exists")
)
