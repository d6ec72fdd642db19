package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	appointmentService "github.com/Okojas/MediCare-doctor-appointment/internal/service/appointment"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

// Service mocks a payment gateway. Order ids are fabricated and
// verification unconditionally succeeds; marking the appointment paid
// still goes through the lifecycle engine's authorized update path.
type Service struct {
	appointments *appointmentService.Service
	gatewayKey   string
	currency     string
}

func NewService(appointments *appointmentService.Service, gatewayKey, currency string) *Service {
	if currency == "" {
		currency = "INR"
	}
	return &Service{
		appointments: appointments,
		gatewayKey:   gatewayKey,
		currency:     currency,
	}
}

// CreateOrder fabricates a gateway order for the calling patient.
func (s *Service) CreateOrder(ctx context.Context, caller model.Identity, req *model.CreateOrderRequest) (*model.PaymentOrder, error) {
	if caller.Role != model.RolePatient {
		return nil, apperrors.NewAuthorization("only patients can create payment orders")
	}

	// The appointment must exist and belong to the caller before an order
	// is handed out.
	if _, err := s.appointments.Get(ctx, caller, req.AppointmentID); err != nil {
		return nil, err
	}

	return &model.PaymentOrder{
		OrderID:  fmt.Sprintf("order_%s", uuid.New()),
		Amount:   req.Amount,
		Currency: s.currency,
		Key:      s.gatewayKey,
	}, nil
}

// Verify confirms a mock payment and marks the appointment paid.
func (s *Service) Verify(ctx context.Context, caller model.Identity, req *model.VerifyPaymentRequest) (*model.Appointment, error) {
	return s.appointments.MarkPaid(ctx, caller, req.AppointmentID)
}
