package postgres

import (
	"context"
	"fmt"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			id, patient_id, doctor_id, appointment_id,
			type, title, file_url, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.DoctorID,
		record.AppointmentID,
		record.Type,
		record.Title,
		record.FileURL,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) List(ctx context.Context, filter *model.MedicalRecordFilter) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, appointment_id,
			   type, title, file_url, notes,
			   created_at, updated_at
		FROM medical_records
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

	query += " ORDER BY created_at DESC"

	records := []*model.MedicalRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
