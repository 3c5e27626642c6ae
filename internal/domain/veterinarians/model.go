package veterinarians

import (
	"strings"

	"myvet/internal/platform/codec"
)

type Veterinarian struct {
	ID              string   `json:"id" validate:"required"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	LicenseNumber   string   `json:"license_number"`
	Specializations []string `json:"specializations"`
	ClinicID        string   `json:"clinic_id"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	ProfileImageURL *string  `json:"profile_image_url"`
	Bio             *string  `json:"bio"`

	YearsOfExperience int     `json:"years_of_experience" validate:"gte=0"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount       int     `json:"review_count" validate:"gte=0"`
}

func (v Veterinarian) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// HasSpecialization compara sin distinguir mayúsculas.
func (v Veterinarian) HasSpecialization(s string) bool {
	for _, sp := range v.Specializations {
		if strings.EqualFold(sp, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

func (v *Veterinarian) UnmarshalJSON(data []byte) error {
	type wire Veterinarian
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*v = Veterinarian(w)
	return nil
}
