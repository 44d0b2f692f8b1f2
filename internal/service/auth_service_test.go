package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims *models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateTokenAcceptsValidToken(t *testing.T) {
	svc := NewAuthService(testSecret, nil)
	signed := signTestToken(t, testSecret, &models.JWTClaims{
		UserID:    "u-1",
		StudentID: "stu-9",
		Role:      models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "stu-9", claims.SubjectID())
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService(testSecret, nil)
	signed := signTestToken(t, "other-secret", &models.JWTClaims{
		UserID: "u-1",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(testSecret, nil)
	signed := signTestToken(t, testSecret, &models.JWTClaims{
		UserID: "u-1",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestSubjectIDFallsBackThroughClaims(t *testing.T) {
	claims := &models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-1"},
	}
	assert.Equal(t, "sub-1", claims.SubjectID())

	claims.UserID = "u-2"
	assert.Equal(t, "u-2", claims.SubjectID())

	claims.StudentID = "stu-3"
	assert.Equal(t, "stu-3", claims.SubjectID())
}
