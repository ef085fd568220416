package attendance

import (
	"testing"
	"time"
)

func TestSameDay(t *testing.T) {
	loc := time.UTC
	a := time.Date(2024, 3, 10, 0, 5, 0, 0, loc)
	b := time.Date(2024, 3, 10, 23, 55, 0, 0, loc)
	if !SameDay(a, b, loc) {
		t.Errorf("expected same day for %v and %v", a, b)
	}
	c := time.Date(2024, 3, 11, 0, 1, 0, 0, loc)
	if SameDay(b, c, loc) {
		t.Errorf("expected different days for %v and %v", b, c)
	}
}

// The calendar date depends on the reference zone: two instants less than
// 24h apart can land on the same or different days depending on the zone.
func TestSameDayZoneDependent(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 23:30 UTC and 01:30 UTC next day: different UTC days, but both fall
	// on the *same* Tokyo day (08:30 and 10:30).
	a := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	b := time.Date(2024, 3, 11, 1, 30, 0, 0, time.UTC)
	if SameDay(a, b, time.UTC) {
		t.Errorf("expected different UTC days")
	}
	if !SameDay(a, b, tokyo) {
		t.Errorf("expected same Tokyo day")
	}
}

func TestFilterMatches(t *testing.T) {
	e := Event{Username: "alice", Action: ActionSignIn}
	cases := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{Filter{Username: "alice"}, true},
		{Filter{Username: "bob"}, false},
		{Filter{Action: ActionSignIn}, true},
		{Filter{Action: ActionSignOut}, false},
		{Filter{Username: "alice", Action: ActionSignOut}, false},
	}
	for i, tc := range cases {
		if got := tc.f.Matches(e); got != tc.want {
			t.Errorf("case %d: Matches=%v, want %v", i, got, tc.want)
		}
	}
}
