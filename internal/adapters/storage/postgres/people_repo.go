package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
)

type VeterinariansRepo struct {
	db *sql.DB
}

func NewVeterinariansRepo(db *sql.DB) *VeterinariansRepo {
	return &VeterinariansRepo{db: db}
}

func (r *VeterinariansRepo) Upsert(ctx context.Context, v veterinarians.Veterinarian) error {
	specs := v.Specializations
	if specs == nil {
		specs = []string{}
	}
	// specializations va como JSONB para no depender del mapeo de arrays de database/sql.
	b, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("marshal specializations: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO veterinarians (
			id, first_name, last_name, license_number,
			specializations, clinic_id, email, phone_number,
			profile_image_url, bio,
			years_of_experience, rating, review_count
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			license_number = EXCLUDED.license_number,
			specializations = EXCLUDED.specializations,
			clinic_id = EXCLUDED.clinic_id,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			profile_image_url = EXCLUDED.profile_image_url,
			bio = EXCLUDED.bio,
			years_of_experience = EXCLUDED.years_of_experience,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count
	`,
		v.ID,
		v.FirstName,
		v.LastName,
		v.LicenseNumber,
		string(b),
		v.ClinicID,
		v.Email,
		v.PhoneNumber,
		toNullString(v.ProfileImageURL),
		toNullString(v.Bio),
		v.YearsOfExperience,
		v.Rating,
		v.ReviewCount,
	)
	return err
}

const vetColumns = `
	id, first_name, last_name, license_number,
	specializations, clinic_id, email, phone_number,
	profile_image_url, bio,
	years_of_experience, rating, review_count`

func (r *VeterinariansRepo) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vetColumns+` FROM veterinarians WHERE id = $1`, id)
	v, err := scanVeterinarian(row)
	if err != nil {
		return veterinarians.Veterinarian{}, notFound(err)
	}
	return v, nil
}

func (r *VeterinariansRepo) List(ctx context.Context, clinicID string) ([]veterinarians.Veterinarian, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vetColumns+`
		FROM veterinarians
		WHERE $1 = '' OR clinic_id = $1
		ORDER BY last_name ASC, id ASC
	`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]veterinarians.Veterinarian, 0)
	for rows.Next() {
		v, err := scanVeterinarian(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVeterinarian(s scanner) (veterinarians.Veterinarian, error) {
	var (
		v          veterinarians.Veterinarian
		specs      []byte
		image, bio sql.NullString
	)
	if err := s.Scan(
		&v.ID,
		&v.FirstName,
		&v.LastName,
		&v.LicenseNumber,
		&specs,
		&v.ClinicID,
		&v.Email,
		&v.PhoneNumber,
		&image,
		&bio,
		&v.YearsOfExperience,
		&v.Rating,
		&v.ReviewCount,
	); err != nil {
		return veterinarians.Veterinarian{}, err
	}
	if err := json.Unmarshal(specs, &v.Specializations); err != nil {
		return veterinarians.Veterinarian{}, fmt.Errorf("decode specializations: %w", err)
	}
	v.ProfileImageURL = fromNullString(image)
	v.Bio = fromNullString(bio)
	return v, nil
}

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Upsert(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, email, phone_number,
			street, city, state, zip_code, country,
			profile_image_url, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			country = EXCLUDED.country,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = EXCLUDED.updated_at
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PhoneNumber,
		u.Address.Street,
		u.Address.City,
		u.Address.State,
		u.Address.ZipCode,
		u.Address.Country,
		toNullString(u.ProfileImageURL),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, first_name, last_name, email, phone_number,
			street, city, state, zip_code, country,
			profile_image_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	var (
		u     users.User
		image sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PhoneNumber,
		&u.Address.Street,
		&u.Address.City,
		&u.Address.State,
		&u.Address.ZipCode,
		&u.Address.Country,
		&image,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, notFound(err)
	}
	u.ProfileImageURL = fromNullString(image)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
