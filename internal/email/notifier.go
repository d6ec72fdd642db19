package email

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/logger"
)

// BookingNotifier mails a confirmation after a booking commits. Send
// failures are logged, never propagated; the booking has already
// happened.
type BookingNotifier struct {
	users  repository.UserRepository
	sender Service
	logger *logger.Logger
}

func NewBookingNotifier(users repository.UserRepository, sender Service, log *logger.Logger) *BookingNotifier {
	return &BookingNotifier{users: users, sender: sender, logger: log}
}

func (n *BookingNotifier) AppointmentBooked(ctx context.Context, apt *model.Appointment) {
	patient, err := n.users.Get(ctx, apt.PatientID)
	if err != nil {
		n.logger.Error(err, "failed to resolve patient for booking confirmation")
		return
	}

	date := apt.Date.Format("2006-01-02")
	if err := n.sender.SendBookingConfirmation(ctx, patient.Email, patient.Name, date, apt.Time); err != nil {
		n.logger.Error(err, "failed to send booking confirmation")
	}
}
