package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"myvet/internal/backend"
	"myvet/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]backend.OwnedAppointment
}

func NewAppointmentRepo() backend.AppointmentRepository {
	return &appointmentRepo{
		byID: make(map[string]backend.OwnedAppointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, ownerID string, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	r.byID[a.ID] = backend.OwnedAppointment{OwnerID: ownerID, Appointment: a}
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	oa, exists := r.byID[a.ID]
	if !exists {
		return backend.ErrNotFound
	}
	oa.Appointment = a
	r.byID[a.ID] = oa
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (backend.OwnedAppointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	oa, ok := r.byID[id]
	if !ok {
		return backend.OwnedAppointment{}, backend.ErrNotFound
	}
	return oa, nil
}

func (r *appointmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]appointments.Appointment, error) {
	return r.list(func(oa backend.OwnedAppointment) bool {
		return oa.OwnerID == ownerID
	}), nil
}

func (r *appointmentRepo) ListByVeterinarian(ctx context.Context, vetID string, from, to time.Time) ([]appointments.Appointment, error) {
	return r.list(func(oa backend.OwnedAppointment) bool {
		a := oa.Appointment
		return a.VeterinarianID == vetID && !a.DateTime.Before(from) && a.DateTime.Before(to)
	}), nil
}

func (r *appointmentRepo) list(keep func(backend.OwnedAppointment) bool) []appointments.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, oa := range r.byID {
		if keep(oa) {
			out = append(out, oa.Appointment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}
