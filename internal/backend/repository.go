package backend

import (
	"context"
	"time"

	"myvet/internal/domain/appointments"
	"myvet/internal/domain/pets"
	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
)

// Los adapters devuelven ErrNotFound (o lo envuelven) cuando no hay fila.

// OwnedPet es una mascota con su dueño. El wire no expone el dueño;
// se deduce del path /users/{id}/pets.
type OwnedPet struct {
	OwnerID string
	Pet     pets.Pet
}

type PetRepository interface {
	Create(ctx context.Context, ownerID string, p pets.Pet) error
	Update(ctx context.Context, p pets.Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (OwnedPet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error)
}

// MedicalRecordRepository: ListByPet ordena por fecha ascendente.
type MedicalRecordRepository interface {
	Add(ctx context.Context, m pets.MedicalRecord) error
	ListByPet(ctx context.Context, petID string) ([]pets.MedicalRecord, error)
	DeleteByPet(ctx context.Context, petID string) error
}

type OwnedAppointment struct {
	OwnerID     string
	Appointment appointments.Appointment
}

// AppointmentRepository: los listados ordenan por date_time ascendente.
type AppointmentRepository interface {
	Create(ctx context.Context, ownerID string, a appointments.Appointment) error
	Update(ctx context.Context, a appointments.Appointment) error
	GetByID(ctx context.Context, id string) (OwnedAppointment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]appointments.Appointment, error)
	// ListByVeterinarian devuelve las citas con date_time en [from, to).
	ListByVeterinarian(ctx context.Context, vetID string, from, to time.Time) ([]appointments.Appointment, error)
}

type VeterinarianRepository interface {
	Upsert(ctx context.Context, v veterinarians.Veterinarian) error
	GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error)
	// List con clinicID vacío devuelve todos.
	List(ctx context.Context, clinicID string) ([]veterinarians.Veterinarian, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, u users.User) error
	GetByID(ctx context.Context, id string) (users.User, error)
}

type Repositories struct {
	Pets          PetRepository
	Records       MedicalRecordRepository
	Appointments  AppointmentRepository
	Veterinarians VeterinarianRepository
	Users         UserRepository
}
