package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/parlourcover/parlour/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	token, err := svc.Generate(12, 3, authorization.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.ConsultantID)
	assert.Equal(t, uint(3), claims.ParlourID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one", 60).Generate(1, 1, authorization.RoleConsultant)
	require.NoError(t, err)

	_, err = NewJWTService("two", 60).Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", 60)
	past := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		ConsultantID: 1,
		Role:         authorization.RoleConsultant,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(4)

	hash, err := h.Hash("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.NoError(t, h.Verify("s3cretpass", hash))
	assert.ErrorIs(t, h.Verify("wrong", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("s3cretpass", "not-a-bcrypt-hash"), ErrPasswordMismatch)
}

func TestNewBcryptPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
	assert.Equal(t, 12, NewBcryptPasswordHasher(12).cost)
}
