package postgres

import (
	"context"
	"database/sql"

	"myvet/internal/domain/pets"
)

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

func (r *MedicalRecordsRepo) Add(ctx context.Context, m pets.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (
			id, pet_id, date,
			diagnosis, treatment, veterinarian,
			notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID,
		m.PetID,
		m.Date,
		m.Diagnosis,
		m.Treatment,
		m.Veterinarian,
		toNullString(m.Notes),
	)
	return err
}

func (r *MedicalRecordsRepo) ListByPet(ctx context.Context, petID string) ([]pets.MedicalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, date,
			diagnosis, treatment, veterinarian,
			notes
		FROM medical_records
		WHERE pet_id = $1
		ORDER BY date ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.MedicalRecord, 0)
	for rows.Next() {
		var (
			m     pets.MedicalRecord
			notes sql.NullString
		)
		if err := rows.Scan(
			&m.ID,
			&m.PetID,
			&m.Date,
			&m.Diagnosis,
			&m.Treatment,
			&m.Veterinarian,
			&notes,
		); err != nil {
			return nil, err
		}
		m.Date = m.Date.UTC()
		m.Notes = fromNullString(notes)
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteByPet: el FK ya tiene ON DELETE CASCADE; se borra igual antes que la mascota.
func (r *MedicalRecordsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE pet_id = $1`, petID)
	return err
}
