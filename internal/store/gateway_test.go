package store

import (
	"errors"
	"testing"
	"time"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

// flakyTier wraps another tier and fails every call with a transport error
// until healthy is set. It counts calls so tests can assert whether the
// gateway consulted it.
type flakyTier struct {
	Tier
	name       string
	configured bool
	healthy    bool
	calls      int
}

func (f *flakyTier) Name() string     { return f.name }
func (f *flakyTier) Configured() bool { return f.configured }

func (f *flakyTier) fail() error {
	f.calls++
	return errors.New("connection refused")
}

func (f *flakyTier) FindUserByUsername(username string) (*user.User, error) {
	if !f.healthy {
		return nil, f.fail()
	}
	f.calls++
	return f.Tier.FindUserByUsername(username)
}

func (f *flakyTier) CreateUser(u *user.User) error {
	if !f.healthy {
		return f.fail()
	}
	f.calls++
	return f.Tier.CreateUser(u)
}

func (f *flakyTier) ListUsers() ([]user.User, error) {
	if !f.healthy {
		return nil, f.fail()
	}
	f.calls++
	return f.Tier.ListUsers()
}

func (f *flakyTier) DeleteUser(username string) error {
	if !f.healthy {
		return f.fail()
	}
	f.calls++
	return f.Tier.DeleteUser(username)
}

func (f *flakyTier) AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error) {
	if !f.healthy {
		return nil, f.fail()
	}
	f.calls++
	return f.Tier.AppendAttendanceEvent(e)
}

func (f *flakyTier) ListAttendanceEvents(filter attendance.Filter) ([]attendance.Event, error) {
	if !f.healthy {
		return nil, f.fail()
	}
	f.calls++
	return f.Tier.ListAttendanceEvents(filter)
}

func TestGatewaySkipsUnconfiguredTier(t *testing.T) {
	mem := NewMemoryStore()
	dead := &flakyTier{name: "remote", configured: false}
	gw := NewGateway(dead, mem)
	u := user.User{ID: "u1", Username: "alice", Email: "a@x.com"}
	if err := gw.CreateUser(&u); err != nil {
		t.Fatalf("create through gateway: %v", err)
	}
	if dead.calls != 0 {
		t.Errorf("unconfigured tier must never be called, got %d calls", dead.calls)
	}
	if _, err := mem.FindUserByUsername("alice"); err != nil {
		t.Errorf("write should have landed on the memory tier: %v", err)
	}
}

func TestGatewayFallsThroughOnTransportError(t *testing.T) {
	mem := NewMemoryStore()
	broken := &flakyTier{Tier: NewMemoryStore(), name: "remote", configured: true, healthy: false}
	gw := NewGateway(broken, mem)
	u := user.User{ID: "u1", Username: "alice", Email: "a@x.com"}
	if err := gw.CreateUser(&u); err != nil {
		t.Fatalf("create should fall through to memory: %v", err)
	}
	if broken.calls == 0 {
		t.Errorf("broken tier should have been attempted")
	}
	if _, err := mem.FindUserByUsername("alice"); err != nil {
		t.Errorf("write should have landed on the memory tier: %v", err)
	}
}

// Data errors must surface from the first configured tier instead of
// falling through; otherwise a duplicate could slip into a lower tier.
func TestGatewayPropagatesDataErrors(t *testing.T) {
	upper := NewMemoryStore()
	lower := NewMemoryStore()
	gw := NewGateway(upper, lower)
	u := user.User{ID: "u1", Username: "alice", Email: "a@x.com"}
	if err := gw.CreateUser(&u); err != nil {
		t.Fatalf("first create: %v", err)
	}
	dup := user.User{ID: "u2", Username: "alice", Email: "b@x.com"}
	if err := gw.CreateUser(&dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate: got %v, want ErrConflict", err)
	}
	// The conflict must not have been retried against the lower tier.
	if _, err := lower.FindUserByUsername("alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lower tier should be untouched, got %v", err)
	}
}

func TestGatewayNotFoundDoesNotFallThrough(t *testing.T) {
	upper := NewMemoryStore()
	lower := NewMemoryStore()
	u := user.User{ID: "u1", Username: "alice", Email: "a@x.com"}
	if err := lower.CreateUser(&u); err != nil {
		t.Fatalf("seed lower tier: %v", err)
	}
	gw := NewGateway(upper, lower)
	// alice exists only on the lower tier; the upper tier's not-found
	// answer is authoritative.
	if _, err := gw.FindUserByUsername("alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from upper tier, got %v", err)
	}
}

func TestGatewayExhaustionReturnsUnavailable(t *testing.T) {
	a := &flakyTier{name: "remote", configured: true}
	b := &flakyTier{name: "file", configured: true}
	gw := NewGateway(a, b)
	if _, err := gw.ListUsers(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("all tiers failing: got %v, want ErrUnavailable", err)
	}
}

func TestGatewayNoTiersConfigured(t *testing.T) {
	gw := NewGateway(&flakyTier{name: "remote"}, &flakyTier{name: "file"})
	if err := gw.DeleteUser("alice"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("no configured tiers: got %v, want ErrUnavailable", err)
	}
}

func TestGatewayEventOpsReachMemoryTier(t *testing.T) {
	mem := NewMemoryStore()
	broken := &flakyTier{Tier: NewMemoryStore(), name: "remote", configured: true}
	gw := NewGateway(broken, mem)
	ev, err := gw.AppendAttendanceEvent(&attendance.Event{
		Username: "alice", Action: attendance.ActionSignIn, Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := gw.ListAttendanceEvents(attendance.Filter{Username: "alice"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].ID != ev.ID {
		t.Errorf("expected the appended event back, got %+v", events)
	}
}
