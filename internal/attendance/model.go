package attendance

import (
	"time"

	"gorm.io/datatypes"
)

type Action string

const (
	ActionSignIn  Action = "sign-in"
	ActionSignOut Action = "sign-out"
)

type Event struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:idx_attendance_signin_day" json:"username"`
	Action       Action    `gorm:"type:varchar(10);not null" json:"action"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	UploadedFile string    `gorm:"size:255" json:"uploadedFile,omitempty"`
	// SignInDay is set only on sign-in events; the composite unique index
	// with Username backs the one-sign-in-per-day rule at the database
	// level. NULL for sign-out rows, so those never collide.
	SignInDay *datatypes.Date `gorm:"uniqueIndex:idx_attendance_signin_day" json:"-"`
}

// Filter narrows ListAttendanceEvents. The zero value matches everything.
type Filter struct {
	Username string
	Action   Action
}

func (f Filter) Matches(e Event) bool {
	if f.Username != "" && e.Username != f.Username {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	return true
}
