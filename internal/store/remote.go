package store

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

// RemoteStore is the preferred tier: a shared relational backend reached
// through gorm. Missing configuration or a failed connect at construction
// leaves the adapter permanently unconfigured for the process lifetime; it
// never becomes available mid-run.
type RemoteStore struct {
	db *gorm.DB
}

func NewRemoteStore(dsn string) *RemoteStore {
	if dsn == "" {
		return &RemoteStore{}
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("[RemoteStore] connect failed, tier disabled: %v", err)
		return &RemoteStore{}
	}
	if err := db.AutoMigrate(&user.User{}, &attendance.Event{}); err != nil {
		log.Printf("[RemoteStore] migrate failed, tier disabled: %v", err)
		return &RemoteStore{}
	}
	return &RemoteStore{db: db}
}

// NewRemoteStoreWithDB wraps an already-open gorm connection. Used by tests
// to run the adapter against sqlite in-memory.
func NewRemoteStoreWithDB(db *gorm.DB) *RemoteStore {
	if err := db.AutoMigrate(&user.User{}, &attendance.Event{}); err != nil {
		log.Printf("[RemoteStore] migrate failed, tier disabled: %v", err)
		return &RemoteStore{}
	}
	return &RemoteStore{db: db}
}

func (s *RemoteStore) Name() string     { return "remote" }
func (s *RemoteStore) Configured() bool { return s.db != nil }

// translate maps gorm's data errors onto the shared taxonomy. Everything
// else is left alone so the gateway treats it as a transport failure.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

func (s *RemoteStore) FindUserByUsername(username string) (*user.User, error) {
	var u user.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *RemoteStore) FindUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *RemoteStore) CreateUser(u *user.User) error {
	// Uniqueness is enforced by the backend's unique indexes, not checked
	// client-side, so two racing inserts cannot both succeed.
	return translate(s.db.Create(u).Error)
}

func (s *RemoteStore) DeleteUser(username string) error {
	res := s.db.Where("username = ?", username).Delete(&user.User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RemoteStore) ListUsers() ([]user.User, error) {
	var users []user.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *RemoteStore) AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error) {
	if err := s.db.Create(e).Error; err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *RemoteStore) ListAttendanceEvents(f attendance.Filter) ([]attendance.Event, error) {
	q := s.db.Order("timestamp desc")
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.Action != "" {
		q = q.Where("action = ?", string(f.Action))
	}
	var events []attendance.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *RemoteStore) UpdateAttendanceEvent(id int64, description, uploadedFile *string) (*attendance.Event, error) {
	var e attendance.Event
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	updates := map[string]interface{}{}
	if description != nil {
		updates["description"] = *description
	}
	if uploadedFile != nil {
		updates["uploaded_file"] = *uploadedFile
	}
	if len(updates) > 0 {
		if err := s.db.Model(&e).Updates(updates).Error; err != nil {
			return nil, translate(err)
		}
	}
	return &e, nil
}
