package dashboard

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"myvet/internal/domain/appointments"
	"myvet/internal/domain/pets"
)

const (
	MaxUpcoming   = 3
	MaxRecentPets = 4
)

type AppointmentLister interface {
	ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error)
}

type PetLister interface {
	ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error)
}

// Summary es lo que muestra la pantalla de inicio.
type Summary struct {
	Upcoming   []appointments.Appointment `json:"upcoming"`
	RecentPets []pets.Pet                 `json:"recent_pets"`
}

type Service struct {
	appts AppointmentLister
	pets  PetLister
	now   func() time.Time
}

func NewService(appts AppointmentLister, pets PetLister) *Service {
	return &Service{appts: appts, pets: pets, now: time.Now}
}

// Load pide citas y mascotas en paralelo. Si cualquiera falla, no hay resultado parcial.
func (s *Service) Load(ctx context.Context, userID string) (Summary, error) {
	var (
		appts []appointments.Appointment
		ps    []pets.Pet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appts, err = s.appts.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		ps, err = s.pets.ListByOwner(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	if len(ps) > MaxRecentPets {
		ps = ps[:MaxRecentPets]
	}
	return Summary{
		Upcoming:   Upcoming(appts, s.now(), MaxUpcoming),
		RecentPets: ps,
	}, nil
}

// Upcoming filtra citas desde now (inclusive) que no estén canceladas ni completadas,
// las ordena por fecha ascendente y corta en limit.
func Upcoming(items []appointments.Appointment, now time.Time, limit int) []appointments.Appointment {
	out := make([]appointments.Appointment, 0, len(items))
	for _, a := range items {
		if a.DateTime.Before(now) {
			continue
		}
		if a.Status == appointments.StatusCancelled || a.Status == appointments.StatusCompleted {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
