package pets

import (
	"context"
	"sync"
)

// Roster es la lista local de mascotas de un dueño; solo cambia tras un round trip exitoso.
type Roster struct {
	svc    *Service
	userID string

	mu    sync.Mutex
	items []Pet
}

func NewRoster(svc *Service, userID string) *Roster {
	return &Roster{svc: svc, userID: userID}
}

func (r *Roster) Refresh(ctx context.Context) error {
	items, err := r.svc.ListByOwner(ctx, r.userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

func (r *Roster) Items() []Pet {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Pet, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Roster) Add(ctx context.Context, in CreateInput) (Pet, error) {
	p, err := r.svc.Create(ctx, r.userID, in)
	if err != nil {
		return Pet{}, err
	}
	r.mu.Lock()
	r.items = append(r.items, p)
	r.mu.Unlock()
	return p, nil
}

func (r *Roster) Remove(ctx context.Context, id string) error {
	if err := r.svc.Delete(ctx, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items[:0]
	for _, p := range r.items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	r.items = out
	return nil
}
