package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"myvet/internal/domain/appointments"
	"myvet/internal/platform/codec"
	"myvet/internal/ports/auth"
)

// MaxDurationMinutes acota el largo de una cita. La búsqueda de solapes mira
// este margen hacia atrás.
const MaxDurationMinutes = 8 * 60

// slotNamespace es la base de los ids deterministas de TimeSlot.
var slotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api.myvet.app/v1/slots"))

func (s *Service) ListAppointments(ctx context.Context, caller auth.Claims, ownerID string) ([]appointments.Appointment, error) {
	if err := authorize(caller, ownerID); err != nil {
		return nil, err
	}
	return s.appts.ListByOwner(ctx, ownerID)
}

func (s *Service) loadAppointment(ctx context.Context, caller auth.Claims, id string) (OwnedAppointment, error) {
	if strings.TrimSpace(caller.UserID) == "" {
		return OwnedAppointment{}, ErrUnauthorized
	}
	oa, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return OwnedAppointment{}, err
	}
	if err := authorize(caller, oa.OwnerID); err != nil {
		return OwnedAppointment{}, err
	}
	return oa, nil
}

func (s *Service) GetAppointment(ctx context.Context, caller auth.Claims, id string) (appointments.Appointment, error) {
	oa, err := s.loadAppointment(ctx, caller, id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return oa.Appointment, nil
}

// CreateAppointment reserva bajo el lock de la agenda del veterinario para ese día.
// La cita nace scheduled y sin recordatorio enviado.
func (s *Service) CreateAppointment(ctx context.Context, caller auth.Claims, in appointments.CreateInput) (appointments.Appointment, error) {
	if err := codec.Validate(in); err != nil {
		return appointments.Appointment{}, invalid(err)
	}
	if in.Duration > MaxDurationMinutes {
		return appointments.Appointment{}, invalid(fmt.Errorf("duration exceeds %d minutes", MaxDurationMinutes))
	}

	op, err := s.loadPet(ctx, caller, in.PetID)
	if err != nil {
		return appointments.Appointment{}, err
	}
	if err := s.checkVeterinarian(ctx, in.VeterinarianID, in.ClinicID); err != nil {
		return appointments.Appointment{}, err
	}

	a := appointments.Appointment{
		ID:             s.newID(),
		PetID:          in.PetID,
		VeterinarianID: in.VeterinarianID,
		ClinicID:       in.ClinicID,
		DateTime:       in.DateTime.UTC(),
		Duration:       in.Duration,
		ServiceType:    strings.TrimSpace(in.ServiceType),
		Status:         appointments.StatusScheduled,
		Notes:          in.Notes,
	}
	if !a.DateTime.After(s.now()) {
		return appointments.Appointment{}, invalid(errors.New("date_time must be in the future"))
	}

	err = s.withLocks(ctx, agendaKeys(a), func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, a); err != nil {
			return err
		}
		return s.appts.Create(ctx, op.OwnerID, a)
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	s.log.Info("appointment created", map[string]any{
		"appointment_id":  a.ID,
		"veterinarian_id": a.VeterinarianID,
		"date_time":       a.DateTime,
	})
	return a, nil
}

// UpdateAppointment solo aplica a citas activas. Si cambia horario o veterinario,
// vuelve a chequear solapes.
func (s *Service) UpdateAppointment(ctx context.Context, caller auth.Claims, id string, in appointments.UpdateInput) (appointments.Appointment, error) {
	if in.IsEmpty() {
		return appointments.Appointment{}, invalid(errors.New("nothing to update"))
	}
	if err := codec.Validate(in); err != nil {
		return appointments.Appointment{}, invalid(err)
	}
	if in.Duration != nil && *in.Duration > MaxDurationMinutes {
		return appointments.Appointment{}, invalid(fmt.Errorf("duration exceeds %d minutes", MaxDurationMinutes))
	}

	oa, err := s.loadAppointment(ctx, caller, id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a := oa.Appointment
	if !a.Status.IsActive() {
		return appointments.Appointment{}, fmt.Errorf("%w: appointment is %s", ErrConflict, a.Status)
	}

	reschedule := false
	if in.VeterinarianID != nil && *in.VeterinarianID != a.VeterinarianID {
		a.VeterinarianID = *in.VeterinarianID
		reschedule = true
	}
	if in.ClinicID != nil && *in.ClinicID != a.ClinicID {
		a.ClinicID = *in.ClinicID
		reschedule = true
	}
	if in.DateTime != nil && !in.DateTime.Equal(a.DateTime) {
		a.DateTime = in.DateTime.UTC()
		reschedule = true
	}
	if in.Duration != nil && *in.Duration != a.Duration {
		a.Duration = *in.Duration
		reschedule = true
	}
	if in.ServiceType != nil {
		a.ServiceType = strings.TrimSpace(*in.ServiceType)
	}
	if in.Notes != nil {
		a.Notes = in.Notes
	}

	if !reschedule {
		if err := s.appts.Update(ctx, a); err != nil {
			return appointments.Appointment{}, err
		}
		return a, nil
	}

	if err := s.checkVeterinarian(ctx, a.VeterinarianID, a.ClinicID); err != nil {
		return appointments.Appointment{}, err
	}
	if !a.DateTime.After(s.now()) {
		return appointments.Appointment{}, invalid(errors.New("date_time must be in the future"))
	}
	err = s.withLocks(ctx, agendaKeys(a), func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, a); err != nil {
			return err
		}
		return s.appts.Update(ctx, a)
	})
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

// Transition mueve la cita a next. El dueño solo puede cancelar; el resto es de staff.
func (s *Service) Transition(ctx context.Context, caller auth.Claims, id string, next appointments.Status) (appointments.Appointment, error) {
	if !next.Valid() {
		return appointments.Appointment{}, invalid(fmt.Errorf("unknown status %q", next))
	}
	oa, err := s.loadAppointment(ctx, caller, id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	if next != appointments.StatusCancelled && !caller.IsStaff() {
		return appointments.Appointment{}, ErrForbidden
	}

	a := oa.Appointment
	if !a.Status.CanTransitionTo(next) {
		return appointments.Appointment{}, fmt.Errorf("%w: cannot move from %s to %s", ErrConflict, a.Status, next)
	}
	prev := a.Status
	a.Status = next
	if err := s.appts.Update(ctx, a); err != nil {
		return appointments.Appointment{}, err
	}

	s.log.Info("appointment status changed", map[string]any{
		"appointment_id": a.ID,
		"from":           prev,
		"to":             next,
		"by":             caller.UserID,
	})
	return a, nil
}

// AvailableSlots arma la grilla del día de `day` (en UTC). Un turno no está disponible
// si se solapa con una cita activa del veterinario o si ya empezó.
func (s *Service) AvailableSlots(ctx context.Context, vetID string, day time.Time) ([]appointments.TimeSlot, error) {
	if strings.TrimSpace(vetID) == "" || day.IsZero() {
		return nil, invalid(errors.New("veterinarian id and date are required"))
	}
	if _, err := s.vets.GetByID(ctx, vetID); err != nil {
		return nil, err
	}

	y, m, d := day.UTC().Date()
	open := time.Date(y, m, d, s.slots.OpenHour, 0, 0, 0, time.UTC)
	closing := time.Date(y, m, d, s.slots.CloseHour, 0, 0, 0, time.UTC)

	booked, err := s.appts.ListByVeterinarian(ctx, vetID, open.Add(-MaxDurationMinutes*time.Minute), closing)
	if err != nil {
		return nil, err
	}

	now := s.now()
	step := time.Duration(s.slots.Minutes) * time.Minute
	out := make([]appointments.TimeSlot, 0, int(closing.Sub(open)/step))
	for start := open; !start.Add(step).After(closing); start = start.Add(step) {
		end := start.Add(step)
		free := start.After(now)
		for _, a := range booked {
			if a.Status.IsActive() && overlaps(start, end, a.DateTime, a.EndTime()) {
				free = false
				break
			}
		}
		out = append(out, appointments.TimeSlot{
			ID:          slotID(vetID, start),
			StartTime:   start,
			EndTime:     end,
			IsAvailable: free,
		})
	}
	return out, nil
}

func (s *Service) checkVeterinarian(ctx context.Context, vetID, clinicID string) error {
	v, err := s.vets.GetByID(ctx, vetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid(fmt.Errorf("unknown veterinarian %q", vetID))
		}
		return err
	}
	if v.ClinicID != clinicID {
		return invalid(fmt.Errorf("veterinarian %q does not work at clinic %q", vetID, clinicID))
	}
	return nil
}

// checkOverlap debe correr dentro del lock de la agenda.
func (s *Service) checkOverlap(ctx context.Context, a appointments.Appointment) error {
	from := a.DateTime.Add(-MaxDurationMinutes * time.Minute)
	existing, err := s.appts.ListByVeterinarian(ctx, a.VeterinarianID, from, a.EndTime())
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID == a.ID || !e.Status.IsActive() {
			continue
		}
		if overlaps(a.DateTime, a.EndTime(), e.DateTime, e.EndTime()) {
			return ErrSlotTaken
		}
	}
	return nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// agendaKey bloquea la agenda de un veterinario por día.
func agendaKey(vetID string, day time.Time) string {
	return "agenda:" + vetID + ":" + day.UTC().Format("2006-01-02")
}

// agendaKeys devuelve una key por cada día UTC que toca [a.DateTime, a.EndTime()),
// ya ordenadas. Dos citas que se solapan comparten al menos una.
func agendaKeys(a appointments.Appointment) []string {
	start := a.DateTime.UTC()
	end := a.EndTime().UTC()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	keys := []string{agendaKey(a.VeterinarianID, day)}
	for day = day.AddDate(0, 0, 1); day.Before(end); day = day.AddDate(0, 0, 1) {
		keys = append(keys, agendaKey(a.VeterinarianID, day))
	}
	return keys
}

func slotID(vetID string, start time.Time) string {
	return uuid.NewSHA1(slotNamespace, []byte(vetID+"|"+start.UTC().Format(time.RFC3339))).String()
}
