package postgres

import (
	"context"
	"fmt"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func (r *reportRepository) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM patients) AS total_patients,
			(SELECT COUNT(*) FROM doctors) AS total_doctors,
			(SELECT COUNT(*) FROM appointments) AS total_appointments,
			(SELECT COALESCE(SUM(fee), 0) FROM appointments WHERE payment_status = 'paid') AS revenue
	`
	var stats model.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	return &stats, nil
}
