package report

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

// Service aggregates platform statistics for the admin dashboard.
type Service struct {
	repo repository.ReportRepository
}

func NewService(repo repository.ReportRepository) *Service {
	return &Service{repo: repo}
}

// AdminStats returns platform totals. Admin-only.
func (s *Service) AdminStats(ctx context.Context, caller model.Identity) (*model.AdminStats, error) {
	if caller.Role != model.RoleAdmin {
		return nil, apperrors.NewAuthorization("admin access required")
	}

	stats, err := s.repo.AdminStats(ctx)
	if err != nil {
		return nil, apperrors.NewStore(err)
	}
	return stats, nil
}
