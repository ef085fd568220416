package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-attend/internal/attendance"
	"go-attend/internal/store"
	"go-attend/internal/user"
)

// EditWindow is how long a sign-out event stays editable after creation.
const EditWindow = 12 * time.Hour

// Engine enforces the attendance business rules on top of the persistence
// gateway. The stores are ignorant of these rules, so the active tier can
// change without re-implementing them.
type Engine struct {
	store store.Store
	loc   *time.Location
	now   func() time.Time
	// mu serializes the check-then-append cycles of SignIn and SignOut so
	// two concurrent calls cannot both pass the uniqueness check on the
	// file or memory tier.
	mu sync.Mutex
}

func New(st store.Store, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{store: st, loc: loc, now: time.Now}
}

// SignUp creates a new account. New accounts always get the user role;
// there is no escalation path here.
func (e *Engine) SignUp(username, password, name, email string) (user.User, error) {
	if _, err := e.store.FindUserByUsername(username); err == nil {
		return user.User{}, store.ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return user.User{}, err
	}
	if _, err := e.store.FindUserByEmail(email); err == nil {
		return user.User{}, store.ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return user.User{}, err
	}
	hash, err := user.HashPassword(password)
	if err != nil {
		return user.User{}, err
	}
	u := user.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         user.RoleUser,
		CreatedAt:    e.now(),
	}
	if err := e.store.CreateUser(&u); err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

// Login returns the user with the credential hash stripped. Unknown
// username and wrong password both come back as ErrAuth.
func (e *Engine) Login(username, password string) (user.User, error) {
	u, err := e.store.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return user.User{}, ErrAuth
		}
		return user.User{}, err
	}
	if err := user.CheckPassword(u.PasswordHash, password); err != nil {
		return user.User{}, ErrAuth
	}
	return u.Sanitized(), nil
}

func (e *Engine) HasUsers() (bool, error) {
	users, err := e.store.ListUsers()
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

func (e *Engine) ListUsers() ([]user.User, error) {
	users, err := e.store.ListUsers()
	if err != nil {
		return nil, err
	}
	out := make([]user.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out, nil
}

// DeleteUser refuses to touch the two seed admin accounts. The check runs
// before any store call. Attendance events of a deleted user are left in
// place.
func (e *Engine) DeleteUser(username string) error {
	if username == "admin" || username == "ceo" {
		return ErrForbidden
	}
	return e.store.DeleteUser(username)
}

// SignIn records a sign-in, at most one per user per calendar day.
func (e *Engine) SignIn(username string) (attendance.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	existing, err := e.store.ListAttendanceEvents(attendance.Filter{
		Username: username,
		Action:   attendance.ActionSignIn,
	})
	if err != nil {
		return attendance.Event{}, err
	}
	for _, ev := range existing {
		if attendance.SameDay(ev.Timestamp, now, e.loc) {
			return attendance.Event{}, ErrAlreadySignedIn
		}
	}
	ev := attendance.Event{
		Username:  username,
		Action:    attendance.ActionSignIn,
		Timestamp: now,
		SignInDay: attendance.DateOf(now, e.loc),
	}
	created, err := e.store.AppendAttendanceEvent(&ev)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race against another process on the remote tier's
			// unique index.
			return attendance.Event{}, ErrAlreadySignedIn
		}
		return attendance.Event{}, err
	}
	return *created, nil
}

// SignOut records a sign-out. If the previous sign-out is still inside the
// edit window this is not a new sign-out: the caller gets a
// RecentSignOutError with the existing event's id and should edit that one
// instead.
func (e *Engine) SignOut(username, description, uploadedFile string) (attendance.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	previous, err := e.store.ListAttendanceEvents(attendance.Filter{
		Username: username,
		Action:   attendance.ActionSignOut,
	})
	if err != nil {
		return attendance.Event{}, err
	}
	if len(previous) > 0 && now.Sub(previous[0].Timestamp) < EditWindow {
		return attendance.Event{}, &RecentSignOutError{EventID: previous[0].ID}
	}
	ev := attendance.Event{
		Username:     username,
		Action:       attendance.ActionSignOut,
		Timestamp:    now,
		Description:  description,
		UploadedFile: uploadedFile,
	}
	created, err := e.store.AppendAttendanceEvent(&ev)
	if err != nil {
		return attendance.Event{}, err
	}
	return *created, nil
}

// EditLastSignOut changes description and/or uploaded file of a sign-out
// event while its edit window is open. Timestamp and action never change.
func (e *Engine) EditLastSignOut(eventID int64, description, uploadedFile *string) (attendance.Event, error) {
	events, err := e.store.ListAttendanceEvents(attendance.Filter{Action: attendance.ActionSignOut})
	if err != nil {
		return attendance.Event{}, err
	}
	var target *attendance.Event
	for i := range events {
		if events[i].ID == eventID {
			target = &events[i]
			break
		}
	}
	if target == nil {
		return attendance.Event{}, store.ErrNotFound
	}
	if e.now().Sub(target.Timestamp) >= EditWindow {
		return attendance.Event{}, ErrEditWindowExpired
	}
	updated, err := e.store.UpdateAttendanceEvent(eventID, description, uploadedFile)
	if err != nil {
		return attendance.Event{}, err
	}
	return *updated, nil
}

// ListEvents is a pass-through read for the dashboard.
func (e *Engine) ListEvents(f attendance.Filter) ([]attendance.Event, error) {
	return e.store.ListAttendanceEvents(f)
}

type Stats struct {
	TotalSignIns  int `json:"totalSignIns"`
	TotalSignOuts int `json:"totalSignOuts"`
	TodaySignIns  int `json:"todaySignIns"`
	TodaySignOuts int `json:"todaySignOuts"`
}

// Stats aggregates event counts, scoped to username when given. The today
// buckets use the same calendar-day rule as SignIn.
func (e *Engine) Stats(username string) (Stats, error) {
	events, err := e.store.ListAttendanceEvents(attendance.Filter{Username: username})
	if err != nil {
		return Stats{}, err
	}
	now := e.now()
	var s Stats
	for _, ev := range events {
		today := attendance.SameDay(ev.Timestamp, now, e.loc)
		switch ev.Action {
		case attendance.ActionSignIn:
			s.TotalSignIns++
			if today {
				s.TodaySignIns++
			}
		case attendance.ActionSignOut:
			s.TotalSignOuts++
			if today {
				s.TodaySignOuts++
			}
		}
	}
	return s, nil
}
