package users

import (
	"strings"
	"time"

	"myvet/internal/platform/codec"
)

type User struct {
	ID              string    `json:"id" validate:"required"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email" validate:"required"`
	PhoneNumber     string    `json:"phone_number"`
	Address         Address   `json:"address"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type wire User
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*u = User(w)
	return nil
}

// Address es un valor embebido, sin identidad propia.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	type wire Address
	var w wire
	if err := codec.Decode(data, &w); err != nil {
		return err
	}
	*a = Address(w)
	return nil
}
