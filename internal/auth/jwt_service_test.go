package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ridenbite/internal/model"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("access-secret", "refresh-secret")

	token, err := service.GenerateAccessToken(42, model.RoleRestaurant)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleRestaurant, claims.Role)
	// every access token carries a JTI so logout can blacklist it
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	service := NewJWTService("access-secret", "refresh-secret")

	tokenID, token, err := service.GenerateRefreshToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_SecretsAreNotInterchangeable(t *testing.T) {
	service := NewJWTService("access-secret", "refresh-secret")

	accessToken, err := service.GenerateAccessToken(42, model.RoleCustomer)
	assert.NoError(t, err)
	_, refreshToken, err := service.GenerateRefreshToken(42)
	assert.NoError(t, err)

	// a refresh token must not pass as an access token and vice versa
	_, err = service.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	_, err = service.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("access-secret", "refresh-secret")
	verifier := NewJWTService("other-secret", "other-refresh-secret")

	token, err := issuer.GenerateAccessToken(42, model.RoleAdmin)
	assert.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}
