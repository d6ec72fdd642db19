package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, date, time, type,
			symptoms, fee, status, payment_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			apt.ID,
			apt.PatientID,
			apt.DoctorID,
			apt.Date,
			apt.Time,
			apt.Type,
			apt.Symptoms,
			apt.Fee,
			apt.Status,
			apt.PaymentStatus,
			apt.CreatedAt,
			apt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		if event != nil {
			if err := r.outbox.CreateTx(ctx, tx, event); err != nil {
				return fmt.Errorf("failed to write outbox event: %w", err)
			}
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, type,
			   symptoms, fee, status, payment_status,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, type,
			   symptoms, fee, status, payment_status,
			   created_at, updated_at
		FROM appointments
		WHERE TRUE
	`
	args := []interface{}{}
	argCount := 1

	if filter.PatientID != nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *filter.Status)
		argCount++
	}

	// Deterministic order: most recent date first, creation order and id
	// break ties.
	query += " ORDER BY date DESC, created_at DESC, id"

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	query := `
		UPDATE appointments
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE id = $4
	`
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			apt.Status,
			apt.PaymentStatus,
			apt.UpdatedAt,
			apt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}

		if event != nil {
			if err := r.outbox.CreateTx(ctx, tx, event); err != nil {
				return fmt.Errorf("failed to write outbox event: %w", err)
			}
		}
		return nil
	})
}

func (r *appointmentRepository) CountForDoctorAt(ctx context.Context, doctorID uuid.UUID, date string, timeOfDay string) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND time = $3
		AND status NOT IN ('cancelled')
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, doctorID, date, timeOfDay); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
