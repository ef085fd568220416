package store

import (
	"path/filepath"
	"testing"
	"time"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

func TestMigrateCopiesUsersAndEvents(t *testing.T) {
	dir := t.TempDir()
	src := NewFileStore(filepath.Join(dir, "users.json"), filepath.Join(dir, "events.json"))
	if err := src.CreateUser(&user.User{ID: "u1", Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed src user: %v", err)
	}
	// Same username as a destination seed account; must be skipped, not
	// fail the run.
	if err := src.CreateUser(&user.User{ID: "u2", Username: "admin", Email: "admin@company.com"}); err != nil {
		t.Fatalf("seed src admin: %v", err)
	}
	t1 := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	if _, err := src.AppendAttendanceEvent(&attendance.Event{
		Username: "alice", Action: attendance.ActionSignIn, Timestamp: t1,
	}); err != nil {
		t.Fatalf("seed sign-in: %v", err)
	}
	if _, err := src.AppendAttendanceEvent(&attendance.Event{
		Username: "alice", Action: attendance.ActionSignOut, Timestamp: t1.Add(8 * time.Hour),
	}); err != nil {
		t.Fatalf("seed sign-out: %v", err)
	}

	dst := NewMemoryStore()
	res, err := Migrate(src, dst)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.UsersCopied != 1 || res.UsersSkipped != 1 {
		t.Errorf("users: got %d copied / %d skipped, want 1 / 1", res.UsersCopied, res.UsersSkipped)
	}
	if res.EventsCopied != 2 || res.EventsSkipped != 0 {
		t.Errorf("events: got %d copied / %d skipped, want 2 / 0", res.EventsCopied, res.EventsSkipped)
	}

	if _, err := dst.FindUserByUsername("alice"); err != nil {
		t.Errorf("alice should exist in dst: %v", err)
	}
	events, err := dst.ListAttendanceEvents(attendance.Filter{Username: "alice"})
	if err != nil {
		t.Fatalf("list dst events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events in dst, got %d", len(events))
	}
	// Newest first; dst ids must follow creation order.
	if events[0].Action != attendance.ActionSignOut || events[1].Action != attendance.ActionSignIn {
		t.Errorf("unexpected event order: %+v", events)
	}
	if events[0].ID <= events[1].ID {
		t.Errorf("dst ids should preserve creation order, got %d then %d", events[1].ID, events[0].ID)
	}
}

func TestMigrateSkipsExistingUsersOnRerun(t *testing.T) {
	dir := t.TempDir()
	src := NewFileStore(filepath.Join(dir, "users.json"), filepath.Join(dir, "events.json"))
	if err := src.CreateUser(&user.User{ID: "u1", Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed src user: %v", err)
	}
	dst := NewMemoryStore()
	if _, err := Migrate(src, dst); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	res, err := Migrate(src, dst)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if res.UsersCopied != 0 || res.UsersSkipped != 1 {
		t.Errorf("rerun users: got %d copied / %d skipped, want 0 / 1", res.UsersCopied, res.UsersSkipped)
	}
}
