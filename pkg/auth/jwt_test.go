package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func testUser(role model.Role) *model.User {
	return &model.User{
		Base: model.Base{ID: uuid.New()},
		Role: role,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	user := testUser(model.RoleDoctor)

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateAccessToken(testUser(model.RolePatient))
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)
	token, err := svc.GenerateAccessToken(testUser(model.RolePatient))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
