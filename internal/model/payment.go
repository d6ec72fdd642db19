package model

import "github.com/google/uuid"

type CreateOrderRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
}

// PaymentOrder is a mock gateway order; no real gateway is involved.
type PaymentOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
}

type VerifyPaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	OrderID       string    `json:"order_id"`
}

// AdminStats aggregates platform totals for the admin dashboard.
// Revenue sums fees over appointments with payment_status=paid.
type AdminStats struct {
	TotalPatients     int     `json:"total_patients" db:"total_patients"`
	TotalDoctors      int     `json:"total_doctors" db:"total_doctors"`
	TotalAppointments int     `json:"total_appointments" db:"total_appointments"`
	Revenue           float64 `json:"revenue" db:"revenue"`
}
