package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth covers both unknown username and wrong password so callers
	// cannot enumerate accounts.
	ErrAuth = errors.New("invalid username or password")
	// ErrForbidden guards the two protected seed accounts against deletion.
	ErrForbidden = errors.New("protected account cannot be deleted")
	// ErrAlreadySignedIn: one sign-in per user per calendar day.
	ErrAlreadySignedIn = errors.New("already signed in today")
	// ErrEditWindowExpired: sign-out events lock 12 hours after creation.
	ErrEditWindowExpired = errors.New("sign-out edit window expired")
)

// RecentSignOutError reports that a sign-out inside the edit window already
// exists. The caller should edit that event instead of creating a second
// one.
type RecentSignOutError struct {
	EventID int64
}

func (e *RecentSignOutError) Error() string {
	return fmt.Sprintf("sign-out %d is still inside the edit window", e.EventID)
}
