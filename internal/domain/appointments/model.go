package appointments

import (
	"time"

	"myvet/internal/platform/codec"
)

// Status de una cita. Las transiciones las decide el servidor.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive: la cita todavía ocupa agenda del veterinario.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CanTransitionTo implementa:
// scheduled -> confirmed -> completed
// scheduled|confirmed -> cancelled
// scheduled|confirmed -> no_show
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusConfirmed:
		return s == StatusScheduled
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled, StatusNoShow:
		return s.IsActive()
	default:
		return false
	}
}

// ServiceType es texto libre; estas son las convenciones conocidas.
const (
	ServiceCheckup      = "checkup"
	ServiceVaccination  = "vaccination"
	ServiceSurgery      = "surgery"
	ServiceDental       = "dental"
	ServiceConsultation = "consultation"
)

type Appointment struct {
	ID             string    `json:"id" validate:"required"`
	PetID          string    `json:"pet_id" validate:"required"`
	VeterinarianID string    `json:"veterinarian_id" validate:"required"`
	ClinicID       string    `json:"clinic_id" validate:"required"`
	DateTime       time.Time `json:"date_time"`
	Duration       int       `json:"duration" validate:"gt=0"` // minutos
	ServiceType    string    `json:"service_type" validate:"required"`
	Status         Status    `json:"status" validate:"oneof=scheduled confirmed completed cancelled no_show"`
	Notes          *string   `json:"notes"`
	ReminderSent   bool      `json:"reminder_sent"`
}

// EndTime = DateTime + Duration.
func (a Appointment) EndTime() time.Time {
	return a.DateTime.Add(time.Duration(a.Duration) * time.Minute)
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	type wire Appointment
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*a = Appointment(w)
	return nil
}

// TimeSlot lo calcula el servidor por veterinario y día; el cliente no lo persiste.
type TimeSlot struct {
	ID          string    `json:"id" validate:"required"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time" validate:"gtfield=StartTime"`
	IsAvailable bool      `json:"is_available"`
}

func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	type wire TimeSlot
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*t = TimeSlot(w)
	return nil
}
