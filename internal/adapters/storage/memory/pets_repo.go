package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"myvet/internal/backend"
	"myvet/internal/domain/pets"
)

type petRow struct {
	ownerID string
	pet     pets.Pet
	seq     int64 // orden de alta
}

type petRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[string]petRow
}

func NewPetRepo() backend.PetRepository {
	return &petRepo{
		byID: make(map[string]petRow),
	}
}

func (r *petRepo) Create(ctx context.Context, ownerID string, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	p.MedicalHistory = nil
	r.seq++
	r.byID[p.ID] = petRow{ownerID: ownerID, pet: p, seq: r.seq}
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[p.ID]
	if !exists {
		return backend.ErrNotFound
	}
	p.MedicalHistory = nil
	row.pet = p
	r.byID[p.ID] = row
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return backend.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (backend.OwnedPet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byID[id]
	if !ok {
		return backend.OwnedPet{}, backend.ErrNotFound
	}
	return backend.OwnedPet{OwnerID: row.ownerID, Pet: row.pet}, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]petRow, 0)
	for _, row := range r.byID {
		if row.ownerID == ownerID {
			rows = append(rows, row)
		}
	}

	// Orden de alta, igual que Postgres (created_at asc).
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].seq < rows[j].seq
	})

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.pet)
	}
	return out, nil
}
