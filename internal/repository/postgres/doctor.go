package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
)

const doctorListingColumns = `
	d.id, d.user_id, d.specialty_id, d.qualification, d.experience,
	d.fee, d.hospital, d.location, d.rating, d.total_reviews,
	d.about, d.verified, d.languages, d.availability_days,
	u.name AS user_name, u.email AS user_email, u.phone AS user_phone,
	s.name AS specialty_name, s.description AS specialty_description
`

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorListing, error) {
	query := `
		SELECT ` + doctorListingColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		JOIN specialties s ON s.id = d.specialty_id
		WHERE d.user_id = $1
	`
	var listing model.DoctorListing
	err := r.db.GetContext(ctx, &listing, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &listing, nil
}

func (r *doctorRepository) List(ctx context.Context, filter *model.DoctorFilter) ([]*model.DoctorListing, int, error) {
	where := " WHERE TRUE"
	args := []interface{}{}
	argCount := 1

	if filter.Specialty != "" {
		where += fmt.Sprintf(" AND s.name = $%d", argCount)
		args = append(args, filter.Specialty)
		argCount++
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (u.name ILIKE $%d OR s.name ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	from := `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		JOIN specialties s ON s.id = d.specialty_id
	`

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*)"+from+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := "SELECT " + doctorListingColumns + from + where +
		fmt.Sprintf(" ORDER BY u.name ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset)

	var listings []*model.DoctorListing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	return listings, total, nil
}
