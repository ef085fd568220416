package store

import (
	"errors"

	"go-attend/internal/attendance"
)

// MigrateResult reports what a Migrate run copied and what it left alone.
type MigrateResult struct {
	UsersCopied   int
	UsersSkipped  int
	EventsCopied  int
	EventsSkipped int
}

// Migrate copies every user and attendance event from src into dst, for
// promoting data out of the file tier once a remote backend comes online.
// Records that already exist in dst (ErrConflict) are skipped, so the run
// is safe to repeat. Event IDs are reassigned by dst; timestamps and
// payloads are kept.
func Migrate(src, dst Store) (MigrateResult, error) {
	var res MigrateResult
	users, err := src.ListUsers()
	if err != nil {
		return res, err
	}
	for i := range users {
		u := users[i]
		switch err := dst.CreateUser(&u); {
		case err == nil:
			res.UsersCopied++
		case errors.Is(err, ErrConflict):
			res.UsersSkipped++
		default:
			return res, err
		}
	}
	events, err := src.ListAttendanceEvents(attendance.Filter{})
	if err != nil {
		return res, err
	}
	// Listings come back newest first; insert oldest first so dst's ids
	// keep creation order.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		e.ID = 0
		if _, err := dst.AppendAttendanceEvent(&e); err != nil {
			if errors.Is(err, ErrConflict) {
				res.EventsSkipped++
				continue
			}
			return res, err
		}
		res.EventsCopied++
	}
	return res, nil
}
