package appointment

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/metrics"
)

type fakeRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	events       []*model.OutboxEvent
	lastFilter   *model.AppointmentFilter
	failCreate   error
	failUpdate   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeRepo) Create(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	stored := *apt
	r.appointments[apt.ID] = &stored
	r.events = append(r.events, event)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (r *fakeRepo) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	r.lastFilter = filter
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if filter.PatientID != nil && apt.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && apt.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && apt.Status != *filter.Status {
			continue
		}
		copied := *apt
		out = append(out, &copied)
	}
	// same ordering the SQL implementation applies: date DESC,
	// created_at DESC, id as the final tie-break
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.appointments[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *apt
	r.appointments[apt.ID] = &stored
	r.events = append(r.events, event)
	return nil
}

func (r *fakeRepo) CountForDoctorAt(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string) (int, error) {
	return 0, nil
}

type fakeDirectory struct {
	fees map[uuid.UUID]float64
}

func (d *fakeDirectory) GetFee(ctx context.Context, doctorUserID uuid.UUID) (float64, error) {
	fee, ok := d.fees[doctorUserID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return fee, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	booked []*model.Appointment
}

func (n *fakeNotifier) AppointmentBooked(ctx context.Context, apt *model.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, apt)
}

func (n *fakeNotifier) bookings() []*model.Appointment {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*model.Appointment(nil), n.booked...)
}

func newTestService(doctorID uuid.UUID, fee float64) (*Service, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, &fakeDirectory{fees: map[uuid.UUID]float64{doctorID: fee}}, notifier, nil)
	return svc, repo, notifier
}

func patientIdentity() model.Identity {
	return model.Identity{UserID: uuid.New(), Role: model.RolePatient}
}

func validCreateRequest(doctorID uuid.UUID) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		DoctorID: doctorID,
		Date:     "2026-09-15",
		Time:     "14:30",
		Type:     model.AppointmentTypeVideo,
		Symptoms: "persistent cough",
	}
}

func TestCreateAppointment(t *testing.T) {
	doctorID := uuid.New()
	svc, repo, notifier := newTestService(doctorID, 150)
	caller := patientIdentity()

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Equal(t, caller.UserID, apt.PatientID)
	assert.Equal(t, doctorID, apt.DoctorID)
	assert.Equal(t, "14:30", apt.Time)
	assert.Equal(t, model.AppointmentStatusConfirmed, apt.Status)
	assert.Equal(t, model.PaymentStatusPending, apt.PaymentStatus)
	assert.Equal(t, 150.0, apt.Fee)
	assert.Equal(t, apt.CreatedAt, apt.UpdatedAt)

	require.Len(t, repo.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, repo.events[0].EventType)
	assert.Equal(t, model.OutboxStatusPending, repo.events[0].Status)

	// notification is dispatched off the request path
	require.Eventually(t, func() bool {
		return len(notifier.bookings()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, apt.ID, notifier.bookings()[0].ID)
}

func TestCreateAppointmentPatientOnly(t *testing.T) {
	doctorID := uuid.New()
	svc, repo, _ := newTestService(doctorID, 100)

	for _, role := range []model.Role{model.RoleDoctor, model.RoleAdmin} {
		caller := model.Identity{UserID: uuid.New(), Role: role}
		_, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
		assert.ErrorIs(t, err, apperrors.ErrAuthorization, "role %s", role)
	}
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointmentValidation(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	tests := []struct {
		name   string
		mutate func(*model.CreateAppointmentRequest)
	}{
		{"bad date", func(r *model.CreateAppointmentRequest) { r.Date = "15-09-2026" }},
		{"bad time", func(r *model.CreateAppointmentRequest) { r.Time = "25:99" }},
		{"unpadded time", func(r *model.CreateAppointmentRequest) { r.Time = "9:30" }},
		{"bad type", func(r *model.CreateAppointmentRequest) { r.Type = "telepathy" }},
		{"empty symptoms", func(r *model.CreateAppointmentRequest) { r.Symptoms = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest(doctorID)
			tt.mutate(req)
			_, err := svc.Create(context.Background(), caller, req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService(uuid.New(), 100)

	_, err := svc.Create(context.Background(), patientIdentity(), validCreateRequest(uuid.New()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateAppointmentStoreFailure(t *testing.T) {
	doctorID := uuid.New()
	svc, repo, notifier := newTestService(doctorID, 100)
	repo.failCreate = errors.New("connection reset")

	_, err := svc.Create(context.Background(), patientIdentity(), validCreateRequest(doctorID))
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Empty(t, notifier.bookings())
}

func TestFeeSnapshotImmutable(t *testing.T) {
	doctorID := uuid.New()
	directory := &fakeDirectory{fees: map[uuid.UUID]float64{doctorID: 200}}
	repo := newFakeRepo()
	svc := NewService(repo, directory, nil, nil)
	caller := patientIdentity()

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)
	require.Equal(t, 200.0, apt.Fee)

	// A later fee change must not leak into the existing booking.
	directory.fees[doctorID] = 500

	got, err := svc.Get(context.Background(), caller, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.Fee)
}

func TestListRoleScoping(t *testing.T) {
	svc, repo, _ := newTestService(uuid.New(), 100)

	patient := patientIdentity()
	doctor := model.Identity{UserID: uuid.New(), Role: model.RoleDoctor}
	admin := model.Identity{UserID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.List(context.Background(), patient, nil)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.PatientID)
	assert.Equal(t, patient.UserID, *repo.lastFilter.PatientID)
	assert.Nil(t, repo.lastFilter.DoctorID)

	_, err = svc.List(context.Background(), doctor, nil)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.DoctorID)
	assert.Equal(t, doctor.UserID, *repo.lastFilter.DoctorID)
	assert.Nil(t, repo.lastFilter.PatientID)

	_, err = svc.List(context.Background(), admin, nil)
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.PatientID)
	assert.Nil(t, repo.lastFilter.DoctorID)
}

func TestListStatusFilter(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	first, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)

	cancelled := model.AppointmentStatusCancelled
	_, err = svc.UpdateStatus(context.Background(), caller, second.ID, &model.UpdateAppointmentStatusRequest{
		Status: &cancelled,
	})
	require.NoError(t, err)

	confirmed := model.AppointmentStatusConfirmed
	got, err := svc.List(context.Background(), caller, &confirmed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)

	bogus := model.AppointmentStatus("lost")
	_, err = svc.List(context.Background(), caller, &bogus)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListOrdering(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	book := func(date string) *model.Appointment {
		req := validCreateRequest(doctorID)
		req.Date = date
		apt, err := svc.Create(context.Background(), caller, req)
		require.NoError(t, err)
		clock = clock.Add(time.Minute)
		return apt
	}

	oldest := book("2026-09-10")
	newest := book("2026-09-20")
	middleFirst := book("2026-09-15")
	middleSecond := book("2026-09-15")

	got, err := svc.List(context.Background(), caller, nil)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// most recent date first; equal dates fall back to creation order,
	// newest booking first
	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middleSecond.ID, got[1].ID)
	assert.Equal(t, middleFirst.ID, got[2].ID)
	assert.Equal(t, oldest.ID, got[3].ID)
}

func TestLifecycleMetrics(t *testing.T) {
	doctorID := uuid.New()
	repo := newFakeRepo()
	m := metrics.New("booking_test")
	svc := NewService(repo, &fakeDirectory{fees: map[uuid.UUID]float64{doctorID: 100}}, nil, m)
	caller := patientIdentity()

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentsBooked))

	cancelled := model.AppointmentStatusCancelled
	_, err = svc.UpdateStatus(context.Background(), caller, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentUpdates.WithLabelValues("cancelled")))

	_, err = svc.Get(context.Background(), patientIdentity(), apt.ID)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthorizationDenied.WithLabelValues("get")))

	_, err = svc.Create(context.Background(), model.Identity{UserID: uuid.New(), Role: model.RoleDoctor}, validCreateRequest(doctorID))
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthorizationDenied.WithLabelValues("create")))
}

func TestGetAuthorization(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	owner := patientIdentity()

	apt, err := svc.Create(context.Background(), owner, validCreateRequest(doctorID))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), owner, apt.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), model.Identity{UserID: doctorID, Role: model.RoleDoctor}, apt.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), patientIdentity(), apt.ID)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = svc.Get(context.Background(), model.Identity{UserID: uuid.New(), Role: model.RoleDoctor}, apt.ID)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = svc.Get(context.Background(), model.Identity{UserID: uuid.New(), Role: model.RoleAdmin}, apt.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateStatusPartial(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	got, err := svc.UpdateStatus(context.Background(), caller, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: &completed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
	// payment_status untouched by a status-only request
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus)

	paid := model.PaymentStatusPaid
	got, err = svc.UpdateStatus(context.Background(), caller, apt.ID, &model.UpdateAppointmentStatusRequest{
		PaymentStatus: &paid,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
}

func TestUpdateStatusBumpsUpdatedAt(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)

	clock = clock.Add(time.Hour)

	// Idempotent no-op transition still advances updated_at.
	confirmed := model.AppointmentStatusConfirmed
	got, err := svc.UpdateStatus(context.Background(), caller, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
	assert.Equal(t, clock, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestUpdateStatusAuthorizationLeavesRecordUntouched(t *testing.T) {
	doctorID := uuid.New()
	svc, repo, _ := newTestService(doctorID, 100)
	owner := patientIdentity()

	apt, err := svc.Create(context.Background(), owner, validCreateRequest(doctorID))
	require.NoError(t, err)

	cancelled := model.AppointmentStatusCancelled
	_, err = svc.UpdateStatus(context.Background(), patientIdentity(), apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: &cancelled,
	})
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	stored := repo.appointments[apt.ID]
	assert.Equal(t, model.AppointmentStatusConfirmed, stored.Status)
	assert.Equal(t, apt.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _ := newTestService(uuid.New(), 100)
	cancelled := model.AppointmentStatusCancelled

	_, err := svc.UpdateStatus(context.Background(), patientIdentity(), uuid.New(), &model.UpdateAppointmentStatusRequest{
		Status: &cancelled,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkPaid(t *testing.T) {
	doctorID := uuid.New()
	svc, _, _ := newTestService(doctorID, 100)
	caller := patientIdentity()

	apt, err := svc.Create(context.Background(), caller, validCreateRequest(doctorID))
	require.NoError(t, err)

	got, err := svc.MarkPaid(context.Background(), caller, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
}
