package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"myvet/internal/backend"
)

var (
	ErrNotFound = backend.ErrNotFound
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si no existen. Idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema step %d: %w", i, err)
		}
	}
	return nil
}

// NewRepositories arma el set completo sobre db.
func NewRepositories(db *sql.DB) backend.Repositories {
	return backend.Repositories{
		Pets:          NewPetsRepo(db),
		Records:       NewMedicalRecordsRepo(db),
		Appointments:  NewAppointmentsRepo(db),
		Veterinarians: NewVeterinariansRepo(db),
		Users:         NewUsersRepo(db),
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                TEXT PRIMARY KEY,
		first_name        TEXT NOT NULL DEFAULT '',
		last_name         TEXT NOT NULL DEFAULT '',
		email             TEXT NOT NULL,
		phone_number      TEXT NOT NULL DEFAULT '',
		street            TEXT NOT NULL DEFAULT '',
		city              TEXT NOT NULL DEFAULT '',
		state             TEXT NOT NULL DEFAULT '',
		zip_code          TEXT NOT NULL DEFAULT '',
		country           TEXT NOT NULL DEFAULT '',
		profile_image_url TEXT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS veterinarians (
		id                  TEXT PRIMARY KEY,
		first_name          TEXT NOT NULL DEFAULT '',
		last_name           TEXT NOT NULL DEFAULT '',
		license_number      TEXT NOT NULL DEFAULT '',
		specializations     JSONB NOT NULL DEFAULT '[]',
		clinic_id           TEXT NOT NULL,
		email               TEXT NOT NULL DEFAULT '',
		phone_number        TEXT NOT NULL DEFAULT '',
		profile_image_url   TEXT NULL,
		bio                 TEXT NULL,
		years_of_experience INT NOT NULL DEFAULT 0,
		rating              DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count        INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS veterinarians_clinic_idx ON veterinarians (clinic_id)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		type          TEXT NOT NULL,
		breed         TEXT NOT NULL DEFAULT '',
		age           INT NOT NULL DEFAULT 0,
		weight        DOUBLE PRECISION NOT NULL DEFAULT 0,
		date_of_birth TIMESTAMPTZ NULL,
		microchip_id  TEXT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS medical_records (
		id           TEXT PRIMARY KEY,
		pet_id       TEXT NOT NULL REFERENCES pets (id) ON DELETE CASCADE,
		date         TIMESTAMPTZ NOT NULL,
		diagnosis    TEXT NOT NULL,
		treatment    TEXT NOT NULL,
		veterinarian TEXT NOT NULL,
		notes        TEXT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS medical_records_pet_idx ON medical_records (pet_id, date)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id              TEXT PRIMARY KEY,
		owner_user_id   TEXT NOT NULL,
		pet_id          TEXT NOT NULL,
		veterinarian_id TEXT NOT NULL,
		clinic_id       TEXT NOT NULL,
		date_time       TIMESTAMPTZ NOT NULL,
		duration        INT NOT NULL CHECK (duration > 0),
		service_type    TEXT NOT NULL,
		status          TEXT NOT NULL,
		notes           TEXT NULL,
		reminder_sent   BOOLEAN NOT NULL DEFAULT false,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_vet_time_idx ON appointments (veterinarian_id, date_time)`,
	`CREATE INDEX IF NOT EXISTS appointments_owner_idx ON appointments (owner_user_id, date_time)`,
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// fromNullTime normaliza a UTC: pgx devuelve timestamptz en la zona local.
func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
