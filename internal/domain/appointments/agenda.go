package appointments

import (
	"context"
	"sync"
)

// Agenda es la lista local de citas de un usuario.
// Solo cambia después de un round trip exitoso; si el servidor falla, queda igual.
type Agenda struct {
	svc    *Service
	userID string

	mu    sync.Mutex
	items []Appointment
}

func NewAgenda(svc *Service, userID string) *Agenda {
	return &Agenda{svc: svc, userID: userID}
}

func (a *Agenda) Refresh(ctx context.Context) error {
	items, err := a.svc.ListByUser(ctx, a.userID)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
	return nil
}

func (a *Agenda) Items() []Appointment {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Appointment, len(a.items))
	copy(out, a.items)
	return out
}

// Book agrega la cita devuelta por el servidor, no el input.
func (a *Agenda) Book(ctx context.Context, in CreateInput) (Appointment, error) {
	created, err := a.svc.Create(ctx, in)
	if err != nil {
		return Appointment{}, err
	}
	a.mu.Lock()
	a.items = append(a.items, created)
	a.mu.Unlock()
	return created, nil
}

func (a *Agenda) Cancel(ctx context.Context, id string) error {
	if err := a.svc.Cancel(ctx, id); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.items[:0]
	for _, it := range a.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	a.items = out
	return nil
}
