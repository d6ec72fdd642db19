package record

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

// Service manages medical record uploads and role-scoped listings.
// Records consume appointment identifiers; they never touch appointment
// state.
type Service struct {
	repo      repository.MedicalRecordRepository
	uploadDir string
}

func NewService(repo repository.MedicalRecordRepository, uploadDir string) (*Service, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Service{repo: repo, uploadDir: uploadDir}, nil
}

// UploadParams describes a record upload.
type UploadParams struct {
	Title         string
	Type          model.RecordType
	Notes         *string
	DoctorID      *uuid.UUID
	AppointmentID *uuid.UUID
}

// Upload stores the file under the upload dir and persists the record row
// for the calling patient.
func (s *Service) Upload(ctx context.Context, caller model.Identity, file *multipart.FileHeader, params UploadParams) (*model.MedicalRecord, error) {
	if params.Type == "" {
		params.Type = model.RecordTypeOther
	}
	if !params.Type.Valid() {
		return nil, apperrors.NewValidation("invalid record type")
	}

	title := params.Title
	if title == "" {
		title = file.Filename
	}

	dst := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", uuid.New(), filepath.Base(file.Filename)))
	if err := saveUploadedFile(file, dst); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	now := time.Now()
	rec := &model.MedicalRecord{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:     caller.UserID,
		DoctorID:      params.DoctorID,
		AppointmentID: params.AppointmentID,
		Type:          params.Type,
		Title:         title,
		FileURL:       &dst,
		Notes:         params.Notes,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, apperrors.NewStore(err)
	}
	return rec, nil
}

// List returns records scoped to the caller: patients see their own,
// doctors the ones they authored, admins everything.
func (s *Service) List(ctx context.Context, caller model.Identity) ([]*model.MedicalRecord, error) {
	filter := &model.MedicalRecordFilter{}
	switch caller.Role {
	case model.RolePatient:
		id := caller.UserID
		filter.PatientID = &id
	case model.RoleDoctor:
		id := caller.UserID
		filter.DoctorID = &id
	case model.RoleAdmin:
		// unscoped
	default:
		return nil, apperrors.NewAuthorization("unknown role")
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStore(err)
	}
	return records, nil
}

func saveUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
