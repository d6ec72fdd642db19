package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// ErrNotFound is returned by repositories when a row does not exist.
// Services translate it into a client-facing not-found error.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreatePatientProfile(ctx context.Context, profile *model.PatientProfile) error
}

type DoctorRepository interface {
	// GetByUserID resolves a doctor profile by the doctor's user id, the
	// identifier appointments reference.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorListing, error)
	List(ctx context.Context, filter *model.DoctorFilter) ([]*model.DoctorListing, int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
	// UpdateStatus applies the status fields and the outbox event in one
	// transaction; a failure leaves neither visible.
	UpdateStatus(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error
	CountForDoctorAt(ctx context.Context, doctorID uuid.UUID, date string, timeOfDay string) (int, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	List(ctx context.Context, filter *model.MedicalRecordFilter) ([]*model.MedicalRecord, error)
}

type ReportRepository interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
