package auth

import (
	"context"
	"testing"
	"time"

	domainerrors "lapak/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "local-dev-secret"

func TestLocalVerifier_ValidToken(t *testing.T) {
	t.Parallel()

	verifier, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	token, err := SignLocalToken(testSecret, "u1", "ani@example.com", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "ani@example.com", identity.Email)
}

func TestLocalVerifier_ExpiredToken(t *testing.T) {
	t.Parallel()

	verifier, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	token, err := SignLocalToken(testSecret, "u1", "ani@example.com", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestLocalVerifier_WrongSecret(t *testing.T) {
	t.Parallel()

	verifier, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	token, err := SignLocalToken("other-secret", "u1", "ani@example.com", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestLocalVerifier_MissingSubject(t *testing.T) {
	t.Parallel()

	verifier, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	token, err := SignLocalToken(testSecret, "", "ani@example.com", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestNewLocalVerifier_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewLocalVerifier("")
	assert.Error(t, err)
}
