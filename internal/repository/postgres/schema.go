package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema if it does not exist.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	phone         TEXT,
	role          TEXT NOT NULL CHECK (role IN ('patient', 'doctor', 'admin')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS patients (
	id          UUID PRIMARY KEY,
	user_id     UUID NOT NULL UNIQUE REFERENCES users(id),
	age         INTEGER,
	gender      TEXT,
	blood_group TEXT,
	address     TEXT
);

CREATE TABLE IF NOT EXISTS specialties (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT,
	icon        TEXT
);

CREATE TABLE IF NOT EXISTS doctors (
	id                UUID PRIMARY KEY,
	user_id           UUID NOT NULL UNIQUE REFERENCES users(id),
	specialty_id      INTEGER NOT NULL REFERENCES specialties(id),
	qualification     TEXT,
	experience        INTEGER NOT NULL DEFAULT 0,
	fee               NUMERIC(10,2) NOT NULL CHECK (fee >= 0),
	hospital          TEXT,
	location          TEXT,
	rating            NUMERIC(3,2) NOT NULL DEFAULT 0,
	total_reviews     INTEGER NOT NULL DEFAULT 0,
	about             TEXT,
	verified          BOOLEAN NOT NULL DEFAULT false,
	languages         JSONB,
	availability_days JSONB
);

CREATE TABLE IF NOT EXISTS appointments (
	id             UUID PRIMARY KEY,
	patient_id     UUID NOT NULL REFERENCES users(id),
	doctor_id      UUID NOT NULL REFERENCES users(id),
	date           DATE NOT NULL,
	time           TEXT NOT NULL,
	type           TEXT NOT NULL CHECK (type IN ('video', 'in-person')),
	symptoms       TEXT NOT NULL,
	fee            NUMERIC(10,2) NOT NULL CHECK (fee >= 0),
	status         TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
	payment_status TEXT NOT NULL CHECK (payment_status IN ('pending', 'paid', 'refunded')),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_id);
CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments(doctor_id);

CREATE TABLE IF NOT EXISTS medical_records (
	id             UUID PRIMARY KEY,
	patient_id     UUID NOT NULL REFERENCES users(id),
	doctor_id      UUID REFERENCES users(id),
	appointment_id UUID REFERENCES appointments(id),
	type           TEXT NOT NULL,
	title          TEXT NOT NULL,
	file_url       TEXT,
	notes          TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outbox_events (
	id            UUID PRIMARY KEY,
	event_type    TEXT NOT NULL,
	payload       JSONB NOT NULL,
	status        TEXT NOT NULL DEFAULT 'PENDING',
	error_message TEXT,
	retry_count   INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	processed_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox_events(status, created_at);
`
