package store

import "errors"

var (
	// ErrConflict reports a uniqueness violation (username, email, or
	// the per-day sign-in index).
	ErrConflict = errors.New("conflict: username or email already exists")
	// ErrNotFound reports that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned by the gateway when every tier is
	// unconfigured or failed.
	ErrUnavailable = errors.New("no storage tier available")
)

// IsData reports whether err is a data error that must surface to the
// caller. Anything else coming out of a tier is treated as a transport
// failure and triggers fallback to the next tier.
func IsData(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}
