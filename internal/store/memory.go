package store

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

// MemoryStore is the tier of last resort: always configured, never durable.
// Data lives for the process lifetime only.
type MemoryStore struct {
	mu          sync.Mutex
	users       []user.User
	events      []attendance.Event
	nextEventID int64
}

// seedAccounts are the two fixed admin accounts every fresh process knows
// about, so the app is usable before anyone signs up.
var seedAccounts = []struct {
	username, password, name, email string
}{
	{"admin", "admin123", "System Administrator", "admin@company.com"},
	{"ceo", "ceo2024", "Chief Executive Officer", "ceo@company.com"},
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{nextEventID: 1}
	now := time.Now()
	for _, seed := range seedAccounts {
		hash, err := user.HashPassword(seed.password)
		if err != nil {
			log.Printf("[MemoryStore] seeding %q failed: %v", seed.username, err)
			continue
		}
		s.users = append(s.users, user.User{
			ID:           uuid.NewString(),
			Username:     seed.username,
			Email:        seed.email,
			Name:         seed.name,
			PasswordHash: hash,
			Role:         user.RoleAdmin,
			CreatedAt:    now,
		})
	}
	return s
}

func (s *MemoryStore) Name() string     { return "memory" }
func (s *MemoryStore) Configured() bool { return true }

func (s *MemoryStore) FindUserByUsername(username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindUserByEmail(email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrConflict
		}
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListUsers() ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, len(s.users))
	copy(out, s.users)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextEventID
	s.nextEventID++
	s.events = append(s.events, *e)
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) ListAttendanceEvents(f attendance.Filter) ([]attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []attendance.Event
	for _, e := range s.events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *MemoryStore) UpdateAttendanceEvent(id int64, description, uploadedFile *string) (*attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			if description != nil {
				s.events[i].Description = *description
			}
			if uploadedFile != nil {
				s.events[i].UploadedFile = *uploadedFile
			}
			cp := s.events[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
