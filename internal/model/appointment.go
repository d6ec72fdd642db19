package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeVideo    AppointmentType = "video"
	AppointmentTypeInPerson AppointmentType = "in-person"
)

func (t AppointmentType) Valid() bool {
	return t == AppointmentTypeVideo || t == AppointmentTypeInPerson
}

// timeOfDayRe matches the normalized HH:MM time-of-day form appointments
// store. The value round-trips exactly as given.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a normalized HH:MM time string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// Appointment is a booked consultation between a patient and a doctor.
// PatientID, DoctorID, Date, Time and Type are immutable after creation;
// only Status and PaymentStatus mutate.
type Appointment struct {
	Base
	PatientID     uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID      uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Date          time.Time         `json:"date" db:"date"`
	Time          string            `json:"time" db:"time"`
	Type          AppointmentType   `json:"type" db:"type"`
	Symptoms      string            `json:"symptoms" db:"symptoms"`
	Fee           float64           `json:"fee" db:"fee"`
	Status        AppointmentStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status" db:"payment_status"`
}

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID       `json:"doctor_id" binding:"required"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string          `json:"time" binding:"required"`
	Type     AppointmentType `json:"type" binding:"required,oneof=video in-person"`
	Symptoms string          `json:"symptoms" binding:"required"`
}

// UpdateAppointmentStatusRequest carries a partial mutation; nil fields
// are left unchanged.
type UpdateAppointmentStatusRequest struct {
	Status        *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *PaymentStatus     `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
}

// AppointmentFilter scopes a listing. Exactly one of PatientID/DoctorID is
// set for patient/doctor callers; neither for admins.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *AppointmentStatus
}
