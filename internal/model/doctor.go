package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Specialty is a medical specialty a doctor practices under.
type Specialty struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Icon        *string `json:"icon,omitempty" db:"icon"`
}

// Doctor is a doctor profile. Fee is the current consultation fee; the
// lifecycle engine snapshots it onto appointments at booking time and
// never re-reads it afterwards.
type Doctor struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	UserID           uuid.UUID       `json:"user_id" db:"user_id"`
	SpecialtyID      int             `json:"specialty_id" db:"specialty_id"`
	Qualification    *string         `json:"qualification,omitempty" db:"qualification"`
	Experience       int             `json:"experience" db:"experience"`
	Fee              float64         `json:"fee" db:"fee"`
	Hospital         *string         `json:"hospital,omitempty" db:"hospital"`
	Location         *string         `json:"location,omitempty" db:"location"`
	Rating           float64         `json:"rating" db:"rating"`
	TotalReviews     int             `json:"total_reviews" db:"total_reviews"`
	About            *string         `json:"about,omitempty" db:"about"`
	Verified         bool            `json:"verified" db:"verified"`
	Languages        json.RawMessage `json:"languages,omitempty" db:"languages"`
	AvailabilityDays json.RawMessage `json:"availability_days,omitempty" db:"availability_days"`
}

// DoctorFilter represents doctor directory search parameters.
type DoctorFilter struct {
	Specialty string `form:"specialty"`
	Search    string `form:"search"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset"`
}

// DoctorView is the directory projection of a doctor with its nested
// user and specialty, used uniformly by every doctor endpoint.
type DoctorView struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	SpecialtyID      int             `json:"specialty_id"`
	Experience       int             `json:"experience"`
	Fee              float64         `json:"fee"`
	Rating           float64         `json:"rating"`
	Languages        json.RawMessage `json:"languages,omitempty"`
	AvailabilityDays json.RawMessage `json:"availability_days,omitempty"`
	User             *UserView       `json:"user"`
	Specialty        *Specialty      `json:"specialty,omitempty"`
}

// NewDoctorView projects a doctor with its user and specialty.
func NewDoctorView(d *Doctor, u *User, s *Specialty) *DoctorView {
	return &DoctorView{
		ID:               d.ID,
		UserID:           d.UserID,
		SpecialtyID:      d.SpecialtyID,
		Experience:       d.Experience,
		Fee:              d.Fee,
		Rating:           d.Rating,
		Languages:        d.Languages,
		AvailabilityDays: d.AvailabilityDays,
		User:             NewUserView(u),
		Specialty:        s,
	}
}

// DoctorListing couples a doctor row with the joined user and specialty
// columns a directory query selects.
type DoctorListing struct {
	Doctor
	UserName      string  `db:"user_name"`
	UserEmail     string  `db:"user_email"`
	UserPhone     *string `db:"user_phone"`
	SpecialtyName string  `db:"specialty_name"`
	SpecialtyDesc *string `db:"specialty_description"`
}

// View projects a joined listing row.
func (l *DoctorListing) View() *DoctorView {
	return NewDoctorView(
		&l.Doctor,
		&User{Base: Base{ID: l.UserID}, Name: l.UserName, Email: l.UserEmail, Phone: l.UserPhone, Role: RoleDoctor},
		&Specialty{ID: l.SpecialtyID, Name: l.SpecialtyName, Description: l.SpecialtyDesc},
	)
}
