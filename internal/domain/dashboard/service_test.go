package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"myvet/internal/domain/appointments"
	"myvet/internal/domain/pets"
)

type fakeAppts struct {
	items []appointments.Appointment
	err   error
}

func (f fakeAppts) ListByUser(context.Context, string) ([]appointments.Appointment, error) {
	return f.items, f.err
}

type fakePets struct {
	items []pets.Pet
	err   error
}

func (f fakePets) ListByOwner(context.Context, string) ([]pets.Pet, error) {
	return f.items, f.err
}

func appt(id string, at time.Time, st appointments.Status) appointments.Appointment {
	return appointments.Appointment{ID: id, DateTime: at, Duration: 30, Status: st}
}

func TestUpcoming_FiltersSortsAndLimits(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []appointments.Appointment{
		appt("past", now.Add(-time.Hour), appointments.StatusScheduled),
		appt("d3", now.Add(72*time.Hour), appointments.StatusScheduled),
		appt("cancelled", now.Add(time.Hour), appointments.StatusCancelled),
		appt("d1", now.Add(24*time.Hour), appointments.StatusConfirmed),
		appt("completed", now.Add(2*time.Hour), appointments.StatusCompleted),
		appt("now", now, appointments.StatusScheduled),
		appt("d4", now.Add(96*time.Hour), appointments.StatusScheduled),
	}

	got := Upcoming(items, now, MaxUpcoming)
	want := []string{"now", "d1", "d3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestLoad(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ps := make([]pets.Pet, 0, 6)
	for i := 0; i < 6; i++ {
		ps = append(ps, pets.Pet{ID: fmt.Sprintf("p%d", i)})
	}

	svc := NewService(
		fakeAppts{items: []appointments.Appointment{appt("a1", now.Add(time.Hour), appointments.StatusScheduled)}},
		fakePets{items: ps},
	)
	svc.now = func() time.Time { return now }

	sum, err := svc.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(sum.Upcoming) != 1 || len(sum.RecentPets) != MaxRecentPets {
		t.Fatalf("unexpected summary: %d upcoming, %d pets", len(sum.Upcoming), len(sum.RecentPets))
	}
}

func TestLoad_FailureHasNoPartialResult(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(fakeAppts{err: boom}, fakePets{items: []pets.Pet{{ID: "p1"}}})

	sum, err := svc.Load(context.Background(), "u1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if sum.Upcoming != nil || sum.RecentPets != nil {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}
