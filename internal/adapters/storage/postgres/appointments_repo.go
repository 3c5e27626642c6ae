package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"myvet/internal/backend"
	"myvet/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, ownerID string, a appointments.Appointment) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, owner_user_id,
			pet_id, veterinarian_id, clinic_id,
			date_time, duration, service_type,
			status, notes, reminder_sent,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		ownerID,
		a.PetID,
		a.VeterinarianID,
		a.ClinicID,
		a.DateTime,
		a.Duration,
		a.ServiceType,
		string(a.Status),
		toNullString(a.Notes),
		a.ReminderSent,
		now,
		now,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			veterinarian_id = $2,
			clinic_id = $3,
			date_time = $4,
			duration = $5,
			service_type = $6,
			status = $7,
			notes = $8,
			reminder_sent = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.VeterinarianID,
		a.ClinicID,
		a.DateTime,
		a.Duration,
		a.ServiceType,
		string(a.Status),
		toNullString(a.Notes),
		a.ReminderSent,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

const appointmentColumns = `
	id, owner_user_id,
	pet_id, veterinarian_id, clinic_id,
	date_time, duration, service_type,
	status, notes, reminder_sent`

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (backend.OwnedAppointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return backend.OwnedAppointment{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	oa, err := scanAppointment(row)
	if err != nil {
		return backend.OwnedAppointment{}, notFound(err)
	}
	return oa, nil
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerID string) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE owner_user_id = $1
		ORDER BY date_time ASC, id ASC
	`, ownerID)
}

func (r *AppointmentsRepo) ListByVeterinarian(ctx context.Context, vetID string, from, to time.Time) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE veterinarian_id = $1 AND date_time >= $2 AND date_time < $3
		ORDER BY date_time ASC, id ASC
	`, vetID, from, to)
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		oa, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, oa.Appointment)
	}
	return out, rows.Err()
}

func scanAppointment(s scanner) (backend.OwnedAppointment, error) {
	var (
		oa     backend.OwnedAppointment
		status string
		notes  sql.NullString
	)
	a := &oa.Appointment
	if err := s.Scan(
		&a.ID,
		&oa.OwnerID,
		&a.PetID,
		&a.VeterinarianID,
		&a.ClinicID,
		&a.DateTime,
		&a.Duration,
		&a.ServiceType,
		&status,
		&notes,
		&a.ReminderSent,
	); err != nil {
		return backend.OwnedAppointment{}, err
	}
	a.DateTime = a.DateTime.UTC()
	a.Status = appointments.Status(status)
	a.Notes = fromNullString(notes)
	return oa, nil
}
