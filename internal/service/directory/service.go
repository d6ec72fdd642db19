package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

const (
	feeCacheTTL      = 5 * time.Minute
	cleanupInterval  = 10 * time.Minute
	maxDoctorsPerReq = 100
)

// Service is the read-only doctor directory: search, profile lookup and
// the fee lookup the lifecycle engine snapshots from. Fee lookups are
// cached briefly; the snapshot semantics make short staleness harmless.
type Service struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(feeCacheTTL, cleanupInterval),
	}
}

// List searches the directory by specialty and free-text name/specialty
// match, paginated.
func (s *Service) List(ctx context.Context, filter *model.DoctorFilter) ([]*model.DoctorView, int, error) {
	if filter.Limit <= 0 || filter.Limit > maxDoctorsPerReq {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	listings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewStore(err)
	}

	views := make([]*model.DoctorView, 0, len(listings))
	for _, l := range listings {
		views = append(views, l.View())
	}
	return views, total, nil
}

// Get resolves a doctor profile by the doctor's user id.
func (s *Service) Get(ctx context.Context, doctorUserID uuid.UUID) (*model.DoctorView, error) {
	listing, err := s.lookup(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return listing.View(), nil
}

// GetFee returns the doctor's current consultation fee, implementing the
// lifecycle engine's FeeDirectory contract.
func (s *Service) GetFee(ctx context.Context, doctorUserID uuid.UUID) (float64, error) {
	listing, err := s.lookup(ctx, doctorUserID)
	if err != nil {
		return 0, err
	}
	return listing.Fee, nil
}

func (s *Service) lookup(ctx context.Context, doctorUserID uuid.UUID) (*model.DoctorListing, error) {
	key := doctorUserID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.DoctorListing), nil
	}

	listing, err := s.repo.GetByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("doctor")
		}
		return nil, apperrors.NewStore(err)
	}

	s.cache.Set(key, listing, gocache.DefaultExpiration)
	return listing, nil
}
