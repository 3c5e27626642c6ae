package backend

import (
	"context"
	"errors"
	"strings"

	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
	"myvet/internal/platform/codec"
	"myvet/internal/ports/auth"
)

// Veterinarios: lectura pública.

func (s *Service) ListVeterinarians(ctx context.Context, clinicID string) ([]veterinarians.Veterinarian, error) {
	return s.vets.List(ctx, strings.TrimSpace(clinicID))
}

func (s *Service) GetVeterinarian(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	return s.vets.GetByID(ctx, id)
}

func (s *Service) PutVeterinarian(ctx context.Context, v veterinarians.Veterinarian) error {
	if err := codec.Validate(v); err != nil {
		return invalid(err)
	}
	return s.vets.Upsert(ctx, v)
}

// Usuarios: cada uno ve y edita su perfil; staff ve todos.

func (s *Service) GetUser(ctx context.Context, caller auth.Claims, id string) (users.User, error) {
	if err := authorize(caller, id); err != nil {
		return users.User{}, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, caller auth.Claims, id string, in users.UpdateProfileInput) (users.User, error) {
	if strings.TrimSpace(caller.UserID) == "" {
		return users.User{}, ErrUnauthorized
	}
	if caller.UserID != id {
		return users.User{}, ErrForbidden
	}
	if in.IsEmpty() {
		return users.User{}, invalid(errors.New("nothing to update"))
	}
	if err := codec.Validate(in); err != nil {
		return users.User{}, invalid(err)
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return users.User{}, err
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Upsert(ctx, u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

// PutUser registra o reemplaza un usuario (seed, alta desde el proveedor de identidad).
func (s *Service) PutUser(ctx context.Context, u users.User) error {
	if err := codec.Validate(u); err != nil {
		return invalid(err)
	}
	now := s.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	return s.users.Upsert(ctx, u)
}
