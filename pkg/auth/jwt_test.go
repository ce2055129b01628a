package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/outreach-api/internal/model"
)

func testService() JWTService {
	return NewJWTService(JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	user := &model.User{ID: uuid.New(), Email: "ana@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testService()
	user := &model.User{ID: uuid.New(), Email: "ana@example.com"}

	token, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestTokensSignedWithSeparateSecrets(t *testing.T) {
	svc := testService()
	user := &model.User{ID: uuid.New(), Email: "ana@example.com"}

	refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	// A refresh token never validates as an access token.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testService()
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "ana@example.com"}
	token, err := testService().GenerateAccessToken(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{Secret: "different", RefreshSecret: "different"})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
