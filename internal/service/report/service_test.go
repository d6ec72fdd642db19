package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

type fakeReportRepo struct {
	stats model.AdminStats
}

func (r *fakeReportRepo) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	copied := r.stats
	return &copied, nil
}

func TestAdminStats(t *testing.T) {
	svc := NewService(&fakeReportRepo{stats: model.AdminStats{
		TotalPatients:     12,
		TotalDoctors:      3,
		TotalAppointments: 40,
		Revenue:           3600,
	}})

	admin := model.Identity{UserID: uuid.New(), Role: model.RoleAdmin}
	stats, err := svc.AdminStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalPatients)
	assert.Equal(t, 3600.0, stats.Revenue)
}

func TestAdminStatsAdminOnly(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	for _, role := range []model.Role{model.RolePatient, model.RoleDoctor} {
		caller := model.Identity{UserID: uuid.New(), Role: role}
		_, err := svc.AdminStats(context.Background(), caller)
		assert.ErrorIs(t, err, apperrors.ErrAuthorization, string(role))
	}
}
