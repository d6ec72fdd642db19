package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/auth"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/security"
)

var ErrInvalidCredentials = apperrors.NewAuthorization("incorrect email or password")

// Service is the identity provider: registration and login producing
// tokens that carry (user_id, role). Everything downstream trusts the
// validated claims, not the request.
type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewValidation("invalid role")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewStore(err)
	}
	if exists {
		return nil, apperrors.NewValidation("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		// bcrypt rejects passwords over 72 bytes
		return nil, apperrors.NewValidation("invalid password")
	}

	now := time.Now()
	user := &model.User{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.NewStore(err)
	}

	if req.Role == model.RolePatient {
		profile := &model.PatientProfile{
			ID:     uuid.New(),
			UserID: user.ID,
			Age:    req.Age,
			Gender: req.Gender,
		}
		if err := s.userRepo.CreatePatientProfile(ctx, profile); err != nil {
			return nil, apperrors.NewStore(err)
		}
	}

	return s.tokenResponse(user)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmailAndRole(ctx, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.NewStore(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

// Me returns the identity view for the authenticated caller.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*model.UserView, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewStore(err)
	}
	return model.NewUserView(user), nil
}

func (s *Service) tokenResponse(user *model.User) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        model.NewUserView(user),
	}, nil
}
