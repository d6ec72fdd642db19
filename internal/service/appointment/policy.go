package appointment

import (
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

// Authorize decides whether the caller may act on the appointment.
// Patients act only on their own bookings, doctors only on their own
// schedule, admins on everything. The switch is exhaustive over the
// closed role set; an unknown role is always rejected.
func Authorize(caller model.Identity, apt *model.Appointment) error {
	switch caller.Role {
	case model.RolePatient:
		if apt.PatientID != caller.UserID {
			return apperrors.NewAuthorization("not authorized for this appointment")
		}
		return nil
	case model.RoleDoctor:
		if apt.DoctorID != caller.UserID {
			return apperrors.NewAuthorization("not authorized for this appointment")
		}
		return nil
	case model.RoleAdmin:
		return nil
	}
	return apperrors.NewAuthorization("unknown role")
}

// TransitionPolicy decides whether a status transition is allowed.
// Any authorized caller may currently set any enumerated status from any
// current status (completed back to pending included); this is the single
// place to tighten if a transition graph is ever introduced.
func TransitionPolicy(from, to model.AppointmentStatus) error {
	if !to.Valid() {
		return apperrors.NewValidation("invalid appointment status")
	}
	return nil
}

// PaymentTransitionPolicy is the payment_status counterpart of
// TransitionPolicy and is equally permissive.
func PaymentTransitionPolicy(from, to model.PaymentStatus) error {
	if !to.Valid() {
		return apperrors.NewValidation("invalid payment status")
	}
	return nil
}
