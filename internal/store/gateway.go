package store

import (
	"log"

	"go-attend/internal/attendance"
	"go-attend/internal/user"
)

// Gateway routes each call to exactly one tier, tried in fixed preference
// order (remote, file, memory). A transport failure on one tier falls
// through to the next and is only logged; data errors (ErrConflict,
// ErrNotFound) come from the first configured tier and surface immediately,
// because falling through on those would let duplicates slip into a lower
// tier. There is no write-through replication: whichever tier answered a
// write owns that record.
type Gateway struct {
	tiers []Tier
}

func NewGateway(tiers ...Tier) *Gateway {
	for _, t := range tiers {
		if t.Configured() {
			log.Printf("[Gateway] tier %s configured", t.Name())
		} else {
			log.Printf("[Gateway] tier %s not configured, skipping", t.Name())
		}
	}
	return &Gateway{tiers: tiers}
}

func (g *Gateway) route(op string, fn func(Tier) error) error {
	for _, t := range g.tiers {
		if !t.Configured() {
			continue
		}
		err := fn(t)
		if err == nil || IsData(err) {
			return err
		}
		log.Printf("[Gateway] %s on %s tier failed: %v; trying next tier", op, t.Name(), err)
	}
	return ErrUnavailable
}

func (g *Gateway) FindUserByUsername(username string) (*user.User, error) {
	var out *user.User
	err := g.route("findUserByUsername", func(t Tier) error {
		var err error
		out, err = t.FindUserByUsername(username)
		return err
	})
	return out, err
}

func (g *Gateway) FindUserByEmail(email string) (*user.User, error) {
	var out *user.User
	err := g.route("findUserByEmail", func(t Tier) error {
		var err error
		out, err = t.FindUserByEmail(email)
		return err
	})
	return out, err
}

func (g *Gateway) CreateUser(u *user.User) error {
	return g.route("createUser", func(t Tier) error {
		return t.CreateUser(u)
	})
}

func (g *Gateway) DeleteUser(username string) error {
	return g.route("deleteUser", func(t Tier) error {
		return t.DeleteUser(username)
	})
}

func (g *Gateway) ListUsers() ([]user.User, error) {
	var out []user.User
	err := g.route("listUsers", func(t Tier) error {
		var err error
		out, err = t.ListUsers()
		return err
	})
	return out, err
}

func (g *Gateway) AppendAttendanceEvent(e *attendance.Event) (*attendance.Event, error) {
	var out *attendance.Event
	err := g.route("appendAttendanceEvent", func(t Tier) error {
		var err error
		out, err = t.AppendAttendanceEvent(e)
		return err
	})
	return out, err
}

func (g *Gateway) ListAttendanceEvents(f attendance.Filter) ([]attendance.Event, error) {
	var out []attendance.Event
	err := g.route("listAttendanceEvents", func(t Tier) error {
		var err error
		out, err = t.ListAttendanceEvents(f)
		return err
	})
	return out, err
}

func (g *Gateway) UpdateAttendanceEvent(id int64, description, uploadedFile *string) (*attendance.Event, error) {
	var out *attendance.Event
	err := g.route("updateAttendanceEvent", func(t Tier) error {
		var err error
		out, err = t.UpdateAttendanceEvent(id, description, uploadedFile)
		return err
	})
	return out, err
}
