package store

import (
	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

// Store is the operation set shared by every tier and by the gateway.
// Stores know nothing about attendance business rules; those live in the
// engine so tiers can be swapped freely.
type Store interface {
	FindUserByUsername(username string) (*user.User, error)
	FindUserByEmail(email string) (*user.User, error)
	// CreateUser persists u as-is; the caller assigns the ID. Fails with
	// ErrConflict when username or email is taken.
	CreateUser(u *user.User) error
	DeleteUser(username string) error
	// ListUsers returns users ordered by creation time, newest first.
	ListUsers() ([]user.User, error)
	// AppendAttendanceEvent assigns the event ID and persists the event.
	AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error)
	// ListAttendanceEvents returns matching events ordered by timestamp,
	// newest first.
	ListAttendanceEvents(f attendance.Filter) ([]attendance.Event, error)
	// UpdateAttendanceEvent changes description and/or uploaded file of an
	// existing event. Nil pointers leave the field untouched. Timestamp and
	// action are never changed.
	UpdateAttendanceEvent(id int64, description, uploadedFile *string) (*attendance.Event, error)
}

// Tier is a Store that may be absent. The gateway skips tiers that report
// Configured() == false.
type Tier interface {
	Store
	Name() string
	Configured() bool
}
