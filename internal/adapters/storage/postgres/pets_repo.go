package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"myvet/internal/backend"
	"myvet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, ownerID string, p pets.Pet) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, type, breed, age, weight,
			date_of_birth, microchip_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		ownerID,
		p.Name,
		p.Type,
		p.Breed,
		p.Age,
		p.Weight,
		toNullTime(p.DateOfBirth),
		toNullString(p.MicrochipID),
		now,
		now,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			breed = $4,
			age = $5,
			weight = $6,
			date_of_birth = $7,
			microchip_id = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Type,
		p.Breed,
		p.Age,
		p.Weight,
		toNullTime(p.DateOfBirth),
		toNullString(p.MicrochipID),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

const petColumns = `
	id, owner_user_id,
	name, type, breed, age, weight,
	date_of_birth, microchip_id`

func (r *PetsRepo) GetByID(ctx context.Context, id string) (backend.OwnedPet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return backend.OwnedPet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	op, err := scanPet(row)
	if err != nil {
		return backend.OwnedPet{}, notFound(err)
	}
	return op, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		op, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, op.Pet)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (backend.OwnedPet, error) {
	var (
		op   backend.OwnedPet
		dob  sql.NullTime
		chip sql.NullString
	)
	if err := s.Scan(
		&op.Pet.ID,
		&op.OwnerID,
		&op.Pet.Name,
		&op.Pet.Type,
		&op.Pet.Breed,
		&op.Pet.Age,
		&op.Pet.Weight,
		&dob,
		&chip,
	); err != nil {
		return backend.OwnedPet{}, err
	}
	op.Pet.DateOfBirth = fromNullTime(dob)
	op.Pet.MicrochipID = fromNullString(chip)
	return op, nil
}
