package model

import (
	"github.com/google/uuid"
)

type RecordType string

const (
	RecordTypePrescription RecordType = "prescription"
	RecordTypeLabReport    RecordType = "lab_report"
	RecordTypeXRay         RecordType = "xray"
	RecordTypeScan         RecordType = "scan"
	RecordTypeOther        RecordType = "other"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypePrescription, RecordTypeLabReport, RecordTypeXRay,
		RecordTypeScan, RecordTypeOther:
		return true
	}
	return false
}

// MedicalRecord references patient, doctor and appointment by user/entity
// ids; it consumes appointment identifiers, never appointment state.
type MedicalRecord struct {
	Base
	PatientID     uuid.UUID  `json:"patient_id" db:"patient_id"`
	DoctorID      *uuid.UUID `json:"doctor_id,omitempty" db:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty" db:"appointment_id"`
	Type          RecordType `json:"type" db:"type"`
	Title         string     `json:"title" db:"title"`
	FileURL       *string    `json:"file_url,omitempty" db:"file_url"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
}

// MedicalRecordFilter scopes record listings per caller role.
type MedicalRecordFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}
