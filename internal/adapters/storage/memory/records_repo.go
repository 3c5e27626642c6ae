package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"myvet/internal/backend"
	"myvet/internal/domain/pets"
)

type recordRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.MedicalRecord
}

func NewMedicalRecordRepo() backend.MedicalRecordRepository {
	return &recordRepo{
		byID: make(map[string]pets.MedicalRecord),
	}
}

func (r *recordRepo) Add(ctx context.Context, m pets.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string) ([]pets.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.MedicalRecord, 0)
	for _, m := range r.byID {
		if m.PetID == petID {
			out = append(out, m)
		}
	}

	// Historia clínica en orden cronológico.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *recordRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.byID {
		if m.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}
