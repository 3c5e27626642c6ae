package backend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"myvet/internal/domain/pets"
	"myvet/internal/platform/codec"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/auth"
	"myvet/internal/ports/lock"
)

// SlotConfig define la grilla de turnos de un día, en UTC.
type SlotConfig struct {
	Minutes   int
	OpenHour  int
	CloseHour int
}

func (c SlotConfig) withDefaults() SlotConfig {
	if c.Minutes <= 0 {
		c.Minutes = 30
	}
	if c.CloseHour <= c.OpenHour {
		c.OpenHour, c.CloseHour = 9, 18
	}
	return c
}

type Options struct {
	Repos  Repositories
	Locker lock.Locker // nil => sin lock (un solo proceso, tests)
	Logger logger.Logger
	Slots  SlotConfig

	Now   func() time.Time
	NewID func() string
}

// Service implementa el contrato del API para el cliente. Autoriza con auth.Claims:
// el dueño opera sobre lo suyo, staff sobre todo.
type Service struct {
	pets    PetRepository
	records MedicalRecordRepository
	appts   AppointmentRepository
	vets    VeterinarianRepository
	users   UserRepository

	locker lock.Locker
	log    logger.Logger
	slots  SlotConfig
	now    func() time.Time
	newID  func() string
}

func NewService(opts Options) *Service {
	s := &Service{
		pets:    opts.Repos.Pets,
		records: opts.Repos.Records,
		appts:   opts.Repos.Appointments,
		vets:    opts.Repos.Veterinarians,
		users:   opts.Repos.Users,
		locker:  opts.Locker,
		log:     opts.Logger,
		slots:   opts.Slots.withDefaults(),
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *Service) withLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	err := s.locker.WithLock(ctx, key, fn)
	if errors.Is(err, lock.ErrNotAcquired) {
		return ErrSlotBusy
	}
	return err
}

// withLocks toma las keys en orden, anidadas; si alguna está tomada no corre fn.
func (s *Service) withLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	var run func(ctx context.Context, i int) error
	run = func(ctx context.Context, i int) error {
		if i == len(keys) {
			return fn(ctx)
		}
		return s.withLock(ctx, keys[i], func(ctx context.Context) error {
			return run(ctx, i+1)
		})
	}
	return run(ctx, 0)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func authorize(c auth.Claims, ownerID string) error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrUnauthorized
	}
	if !c.Can(ownerID) {
		return ErrForbidden
	}
	return nil
}

// -------------------------
// Pets
// -------------------------

func (s *Service) ListPets(ctx context.Context, caller auth.Claims, ownerID string) ([]pets.Pet, error) {
	if err := authorize(caller, ownerID); err != nil {
		return nil, err
	}
	items, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].MedicalHistory, err = s.records.ListByPet(ctx, items[i].ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Service) loadPet(ctx context.Context, caller auth.Claims, petID string) (OwnedPet, error) {
	if strings.TrimSpace(caller.UserID) == "" {
		return OwnedPet{}, ErrUnauthorized
	}
	op, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return OwnedPet{}, err
	}
	if err := authorize(caller, op.OwnerID); err != nil {
		return OwnedPet{}, err
	}
	return op, nil
}

func (s *Service) GetPet(ctx context.Context, caller auth.Claims, petID string) (pets.Pet, error) {
	op, err := s.loadPet(ctx, caller, petID)
	if err != nil {
		return pets.Pet{}, err
	}
	p := op.Pet
	if p.MedicalHistory, err = s.records.ListByPet(ctx, p.ID); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (s *Service) CreatePet(ctx context.Context, caller auth.Claims, ownerID string, in pets.CreateInput) (pets.Pet, error) {
	if err := authorize(caller, ownerID); err != nil {
		return pets.Pet{}, err
	}
	if err := codec.Validate(in); err != nil {
		return pets.Pet{}, invalid(err)
	}

	p := pets.Pet{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Weight:      in.Weight,
		DateOfBirth: in.DateOfBirth,
		MicrochipID: in.MicrochipID,
	}
	if err := s.pets.Create(ctx, ownerID, p); err != nil {
		return pets.Pet{}, err
	}

	s.log.Info("pet created", map[string]any{"pet_id": p.ID, "owner_id": ownerID})
	return p, nil
}

func (s *Service) UpdatePet(ctx context.Context, caller auth.Claims, petID string, in pets.UpdateInput) (pets.Pet, error) {
	if in.IsEmpty() {
		return pets.Pet{}, invalid(errors.New("nothing to update"))
	}
	if err := codec.Validate(in); err != nil {
		return pets.Pet{}, invalid(err)
	}
	op, err := s.loadPet(ctx, caller, petID)
	if err != nil {
		return pets.Pet{}, err
	}

	p := op.Pet
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		p.Type = strings.TrimSpace(*in.Type)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.MicrochipID != nil {
		p.MicrochipID = in.MicrochipID
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return pets.Pet{}, err
	}
	if p.MedicalHistory, err = s.records.ListByPet(ctx, p.ID); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

// DeletePet borra la mascota y su historial. Las citas quedan (son del dueño).
func (s *Service) DeletePet(ctx context.Context, caller auth.Claims, petID string) error {
	if _, err := s.loadPet(ctx, caller, petID); err != nil {
		return err
	}
	if err := s.records.DeleteByPet(ctx, petID); err != nil {
		return err
	}
	if err := s.pets.Delete(ctx, petID); err != nil {
		return err
	}
	s.log.Info("pet deleted", map[string]any{"pet_id": petID, "by": caller.UserID})
	return nil
}

func (s *Service) ListMedicalRecords(ctx context.Context, caller auth.Claims, petID string) ([]pets.MedicalRecord, error) {
	if _, err := s.loadPet(ctx, caller, petID); err != nil {
		return nil, err
	}
	return s.records.ListByPet(ctx, petID)
}

func (s *Service) AddMedicalRecord(ctx context.Context, caller auth.Claims, petID string, in pets.MedicalRecordInput) (pets.MedicalRecord, error) {
	if err := codec.Validate(in); err != nil {
		return pets.MedicalRecord{}, invalid(err)
	}
	if _, err := s.loadPet(ctx, caller, petID); err != nil {
		return pets.MedicalRecord{}, err
	}

	m := pets.MedicalRecord{
		ID:           s.newID(),
		PetID:        petID,
		Date:         in.Date.UTC(),
		Diagnosis:    strings.TrimSpace(in.Diagnosis),
		Treatment:    strings.TrimSpace(in.Treatment),
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Notes:        in.Notes,
	}
	if err := s.records.Add(ctx, m); err != nil {
		return pets.MedicalRecord{}, err
	}
	return m, nil
}
