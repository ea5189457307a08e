package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seda/hobbyhive/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		SessionTokenExp: exp,
		TokenIssuer:     "hobbyhive.test",
	})
}

func TestGenerateAndValidateSessionToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Nickname: "quizfox"}

	token, expiresIn, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "quizfox", claims.Nickname)
	assert.Equal(t, "hobbyhive.test", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	token, _, err := svc.GenerateSessionToken(&models.User{ID: 7, Nickname: "quizfox"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateSessionToken(&models.User{ID: 7, Nickname: "quizfox"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		SessionTokenExp: time.Hour,
		TokenIssuer:     "hobbyhive.test",
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
