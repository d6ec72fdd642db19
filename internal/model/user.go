package model

import (
	"github.com/google/uuid"
)

// Role is the closed set of caller roles. Every authorization point
// switches exhaustively over these values.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller as produced by the auth middleware.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// User represents a system user account.
type User struct {
	Base
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Name         string  `json:"name" db:"name"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Role         Role    `json:"role" db:"role"`
}

// PatientProfile holds patient-only demographic fields.
type PatientProfile struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Age        *int      `json:"age,omitempty" db:"age"`
	Gender     *string   `json:"gender,omitempty" db:"gender"`
	BloodGroup *string   `json:"blood_group,omitempty" db:"blood_group"`
	Address    *string   `json:"address,omitempty" db:"address"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     string  `json:"name" binding:"required"`
	Phone    *string `json:"phone"`
	Role     Role    `json:"role" binding:"required,oneof=patient doctor admin"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required,oneof=patient doctor admin"`
}

// UserView is the projection of a user returned by the API. One projection
// function per entity; handlers never hand-serialize users.
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
	Role  Role      `json:"role"`
}

// NewUserView projects a user for API responses.
func NewUserView(u *User) *UserView {
	return &UserView{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *UserView `json:"user"`
}
