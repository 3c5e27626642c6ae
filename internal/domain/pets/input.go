package pets

import "time"

type CreateInput struct {
	Name        string     `json:"name" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	Breed       string     `json:"breed"`
	Age         int        `json:"age" validate:"gte=0"`
	Weight      float64    `json:"weight" validate:"gte=0"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	MicrochipID *string    `json:"microchip_id,omitempty"`
}

// UpdateInput: punteros para que nil = no tocar.
type UpdateInput struct {
	Name        *string    `json:"name,omitempty" validate:"omitnil,min=1"`
	Type        *string    `json:"type,omitempty" validate:"omitnil,min=1"`
	Breed       *string    `json:"breed,omitempty"`
	Age         *int       `json:"age,omitempty" validate:"omitnil,gte=0"`
	Weight      *float64   `json:"weight,omitempty" validate:"omitnil,gte=0"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	MicrochipID *string    `json:"microchip_id,omitempty"`
}

func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil &&
		in.Type == nil &&
		in.Breed == nil &&
		in.Age == nil &&
		in.Weight == nil &&
		in.DateOfBirth == nil &&
		in.MicrochipID == nil
}

type MedicalRecordInput struct {
	Date         time.Time `json:"date" validate:"required"`
	Diagnosis    string    `json:"diagnosis" validate:"required"`
	Treatment    string    `json:"treatment" validate:"required"`
	Veterinarian string    `json:"veterinarian" validate:"required"`
	Notes        *string   `json:"notes,omitempty"`
}
