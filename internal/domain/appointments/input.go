package appointments

import "time"

type CreateInput struct {
	PetID          string    `json:"pet_id" validate:"required"`
	VeterinarianID string    `json:"veterinarian_id" validate:"required"`
	ClinicID       string    `json:"clinic_id" validate:"required"`
	DateTime       time.Time `json:"date_time" validate:"required"`
	Duration       int       `json:"duration" validate:"gt=0"`
	ServiceType    string    `json:"service_type" validate:"required"`
	Notes          *string   `json:"notes,omitempty"`
}

// UpdateInput: nil = no tocar. El status no se actualiza por aquí (ver Cancel).
type UpdateInput struct {
	VeterinarianID *string    `json:"veterinarian_id,omitempty" validate:"omitnil,min=1"`
	ClinicID       *string    `json:"clinic_id,omitempty" validate:"omitnil,min=1"`
	DateTime       *time.Time `json:"date_time,omitempty"`
	Duration       *int       `json:"duration,omitempty" validate:"omitnil,gt=0"`
	ServiceType    *string    `json:"service_type,omitempty" validate:"omitnil,min=1"`
	Notes          *string    `json:"notes,omitempty"`
}

func (in UpdateInput) IsEmpty() bool {
	return in.VeterinarianID == nil &&
		in.ClinicID == nil &&
		in.DateTime == nil &&
		in.Duration == nil &&
		in.ServiceType == nil &&
		in.Notes == nil
}
