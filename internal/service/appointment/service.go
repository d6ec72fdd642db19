package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/metrics"
)

// FeeDirectory is the doctor-directory contract the lifecycle engine
// needs: existence plus the current consultation fee.
type FeeDirectory interface {
	GetFee(ctx context.Context, doctorUserID uuid.UUID) (float64, error)
}

// Notifier is told about successful bookings, off the request path.
// Failures are the notifier's problem; the booking has already committed.
type Notifier interface {
	AppointmentBooked(ctx context.Context, apt *model.Appointment)
}

// Service is the appointment lifecycle engine. It enforces caller
// authorization, snapshots the doctor's fee at booking time and applies
// status mutations atomically together with their outbox events.
type Service struct {
	repo      repository.AppointmentRepository
	directory FeeDirectory
	notifier  Notifier
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, directory FeeDirectory, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		metrics:   m,
		now:       time.Now,
	}
}

// Create books an appointment for the calling patient. The doctor's fee
// is copied onto the appointment and never re-derived; the booking is
// auto-confirmed, there is no approval step.
func (s *Service) Create(ctx context.Context, caller model.Identity, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if caller.Role != model.RolePatient {
		s.denied("create")
		return nil, apperrors.NewAuthorization("only patients can book appointments")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewValidation("invalid date, expected YYYY-MM-DD")
	}
	if !model.ValidTimeOfDay(req.Time) {
		return nil, apperrors.NewValidation("invalid time, expected HH:MM")
	}
	if !req.Type.Valid() {
		return nil, apperrors.NewValidation("invalid appointment type")
	}
	if req.Symptoms == "" {
		return nil, apperrors.NewValidation("symptoms are required")
	}

	fee, err := s.directory.GetFee(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("doctor")
		}
		return nil, apperrors.NewStore(err)
	}

	now := s.now()
	apt := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:     caller.UserID,
		DoctorID:      req.DoctorID,
		Date:          date,
		Time:          req.Time,
		Type:          req.Type,
		Symptoms:      req.Symptoms,
		Fee:           fee,
		Status:        model.AppointmentStatusConfirmed,
		PaymentStatus: model.PaymentStatusPending,
	}

	if err := s.repo.Create(ctx, apt, s.event(model.EventAppointmentCreated, apt)); err != nil {
		return nil, apperrors.NewStore(err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}
	if s.notifier != nil {
		// Confirmation mail must not hold up the booking response; the
		// detached context survives the request's cancellation.
		go s.notifier.AppointmentBooked(context.WithoutCancel(ctx), apt)
	}
	return apt, nil
}

// List returns the caller's appointments: patients see their own bookings,
// doctors their own schedule, admins everything. The result is fully
// materialized, ordered by date descending with deterministic tie-breaks.
func (s *Service) List(ctx context.Context, caller model.Identity, status *model.AppointmentStatus) ([]*model.Appointment, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.NewValidation("invalid status filter")
	}

	filter := &model.AppointmentFilter{Status: status}
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
		s.denied("list")
		return nil, apperrors.NewAuthorization("unknown role")
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStore(err)
	}
	return appointments, nil
}

// Get fetches one appointment the caller is authorized to see.
func (s *Service) Get(ctx context.Context, caller model.Identity, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, apt); err != nil {
		s.denied("get")
		return nil, err
	}
	return apt, nil
}

// UpdateStatus applies a partial status/payment_status mutation. Nil
// fields are left unchanged; updated_at advances on every successful
// call, including no-op transitions. Both fields and the outbox event
// commit in one transaction or not at all.
func (s *Service) UpdateStatus(ctx context.Context, caller model.Identity, id uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	apt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(caller, apt); err != nil {
		s.denied("update_status")
		return nil, err
	}

	if req.Status != nil {
		if err := TransitionPolicy(apt.Status, *req.Status); err != nil {
			return nil, err
		}
		apt.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if err := PaymentTransitionPolicy(apt.PaymentStatus, *req.PaymentStatus); err != nil {
			return nil, err
		}
		apt.PaymentStatus = *req.PaymentStatus
	}

	apt.UpdatedAt = s.now()

	if err := s.repo.UpdateStatus(ctx, apt, s.event(model.EventAppointmentUpdated, apt)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment")
		}
		return nil, apperrors.NewStore(err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentUpdates.WithLabelValues(string(apt.Status)).Inc()
	}
	return apt, nil
}

// MarkPaid flags the appointment paid on behalf of payment verification.
// It reuses the same authorized update path as any other mutation.
func (s *Service) MarkPaid(ctx context.Context, caller model.Identity, id uuid.UUID) (*model.Appointment, error) {
	paid := model.PaymentStatusPaid
	return s.UpdateStatus(ctx, caller, id, &model.UpdateAppointmentStatusRequest{PaymentStatus: &paid})
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment")
		}
		return nil, apperrors.NewStore(err)
	}
	return apt, nil
}

func (s *Service) denied(operation string) {
	if s.metrics != nil {
		s.metrics.AuthorizationDenied.WithLabelValues(operation).Inc()
	}
}

func (s *Service) event(eventType string, apt *model.Appointment) *model.OutboxEvent {
	payload, err := json.Marshal(apt)
	if err != nil {
		// Appointment marshalling cannot fail with these field types.
		payload = []byte("{}")
	}
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: s.now(),
	}
}
