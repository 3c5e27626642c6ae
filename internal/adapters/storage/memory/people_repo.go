package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"myvet/internal/backend"
	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
)

type vetRepo struct {
	mu   sync.RWMutex
	byID map[string]veterinarians.Veterinarian
}

func NewVeterinarianRepo() backend.VeterinarianRepository {
	return &vetRepo{byID: make(map[string]veterinarians.Veterinarian)}
}

func (r *vetRepo) Upsert(ctx context.Context, v veterinarians.Veterinarian) error {
	if v.ID == "" {
		return errors.New("veterinarian id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	return nil
}

func (r *vetRepo) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return veterinarians.Veterinarian{}, backend.ErrNotFound
	}
	return v, nil
}

func (r *vetRepo) List(ctx context.Context, clinicID string) ([]veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]veterinarians.Veterinarian, 0)
	for _, v := range r.byID {
		if clinicID == "" || v.ClinicID == clinicID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName == out[j].LastName {
			return out[i].ID < out[j].ID
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() backend.UserRepository {
	return &userRepo{byID: make(map[string]users.User)}
}

func (r *userRepo) Upsert(ctx context.Context, u users.User) error {
	if u.ID == "" {
		return errors.New("user id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, backend.ErrNotFound
	}
	return u, nil
}

// NewRepositories arma el set completo en memoria.
func NewRepositories() backend.Repositories {
	return backend.Repositories{
		Pets:          NewPetRepo(),
		Records:       NewMedicalRecordRepo(),
		Appointments:  NewAppointmentRepo(),
		Veterinarians: NewVeterinarianRepo(),
		Users:         NewUserRepo(),
	}
}
