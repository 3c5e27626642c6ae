package pets

import (
	"time"

	"myvet/internal/platform/codec"
)

// Type es texto libre en el wire; estas son las especies que muestra la app.
const (
	TypeDog    = "dog"
	TypeCat    = "cat"
	TypeRabbit = "rabbit"
	TypeBird   = "bird"
	TypeOther  = "other"
)

// Pet es el perfil de una mascota. Es dueña de su historial médico.
type Pet struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required"`
	Breed string `json:"breed"`

	Age    int     `json:"age" validate:"gte=0"`    // años
	Weight float64 `json:"weight" validate:"gte=0"` // kg

	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	MicrochipID *string    `json:"microchip_id"`

	MedicalHistory []MedicalRecord `json:"medical_history,omitzero"`
}

func (p *Pet) UnmarshalJSON(data []byte) error {
	type wire Pet
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*p = Pet(w)
	return nil
}

// MedicalRecord: PetID es una referencia, no un puntero de ownership.
type MedicalRecord struct {
	ID           string    `json:"id" validate:"required"`
	PetID        string    `json:"pet_id" validate:"required"`
	Date         time.Time `json:"date"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment"`
	Veterinarian string    `json:"veterinarian"` // nombre, texto libre
	Notes        *string   `json:"notes"`
}

func (m *MedicalRecord) UnmarshalJSON(data []byte) error {
	type wire MedicalRecord
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*m = MedicalRecord(w)
	return nil
}
