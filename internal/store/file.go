package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

const fileSchemaVersion = 1

// FileStore keeps users and attendance events in two local JSON files. The
// whole file is the unit of persistence: every mutation reads the current
// content, applies the change in memory and atomically rewrites the file.
// The mutex serializes read-modify-write cycles within this process;
// cross-process writers are not supported.
type FileStore struct {
	mu         sync.Mutex
	usersPath  string
	eventsPath string
}

func NewFileStore(usersPath, eventsPath string) *FileStore {
	return &FileStore{usersPath: usersPath, eventsPath: eventsPath}
}

func (s *FileStore) Name() string     { return "file" }
func (s *FileStore) Configured() bool { return s.usersPath != "" && s.eventsPath != "" }

type usersFile struct {
	Version int         `json:"version"`
	Users   []user.User `json:"users"`
}

type eventsFile struct {
	Version int                `json:"version"`
	NextID  int64              `json:"nextId"`
	Events  []attendance.Event `json:"events"`
}

// loadUsers treats a missing file as an empty set. A bare top-level JSON
// array is accepted for compatibility with pre-versioned users.json files.
func (s *FileStore) loadUsers() ([]user.User, error) {
	raw, err := os.ReadFile(s.usersPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.usersPath, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []user.User
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.usersPath, err)
		}
		return users, nil
	}
	var f usersFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.usersPath, err)
	}
	return f.Users, nil
}

func (s *FileStore) saveUsers(users []user.User) error {
	return writeJSONAtomic(s.usersPath, usersFile{Version: fileSchemaVersion, Users: users})
}

func (s *FileStore) loadEvents() (*eventsFile, error) {
	raw, err := os.ReadFile(s.eventsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &eventsFile{Version: fileSchemaVersion, NextID: 1}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.eventsPath, err)
	}
	var f eventsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.eventsPath, err)
	}
	if f.NextID == 0 {
		f.NextID = 1
		for _, e := range f.Events {
			if e.ID >= f.NextID {
				f.NextID = e.ID + 1
			}
		}
	}
	return &f, nil
}

func (s *FileStore) saveEvents(f *eventsFile) error {
	f.Version = fileSchemaVersion
	return writeJSONAtomic(s.eventsPath, f)
}

func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) FindUserByUsername(username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) FindUserByEmail(email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) CreateUser(u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrConflict
		}
	}
	return s.saveUsers(append(users, *u))
}

func (s *FileStore) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.Username == username {
			return s.saveUsers(append(users[:i], users[i+1:]...))
		}
	}
	return ErrNotFound
}

func (s *FileStore) ListUsers() ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *FileStore) AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.loadEvents()
	if err != nil {
		return nil, err
	}
	e.ID = f.NextID
	f.NextID++
	f.Events = append(f.Events, *e)
	if err := s.saveEvents(f); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

func (s *FileStore) ListAttendanceEvents(filter attendance.Filter) ([]attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.loadEvents()
	if err != nil {
		return nil, err
	}
	var out []attendance.Event
	for _, e := range f.Events {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *FileStore) UpdateAttendanceEvent(id int64, description, uploadedFile *string) (*attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.loadEvents()
	if err != nil {
		return nil, err
	}
	for i := range f.Events {
		if f.Events[i].ID == id {
			if description != nil {
				f.Events[i].Description = *description
			}
			if uploadedFile != nil {
				f.Events[i].UploadedFile = *uploadedFile
			}
			if err := s.saveEvents(f); err != nil {
				return nil, err
			}
			cp := f.Events[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
