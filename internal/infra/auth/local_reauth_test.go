package auth

import (
	"context"
	"testing"

	domainerrors "lapak/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLocalReauthenticator_NoHashAcceptsAnyPassword(t *testing.T) {
	t.Parallel()

	r := NewLocalReauthenticator("")

	assert.NoError(t, r.Reauthenticate(context.Background(), "budi@example.com", "apapun"))
	assert.ErrorIs(t, r.Reauthenticate(context.Background(), "budi@example.com", ""), domainerrors.ErrReauthFailed)
}

func TestLocalReauthenticator_ChecksConfiguredHash(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	r := NewLocalReauthenticator(string(hash))

	assert.NoError(t, r.Reauthenticate(context.Background(), "budi@example.com", "rahasia123"))
	assert.ErrorIs(t, r.Reauthenticate(context.Background(), "budi@example.com", "salah"), domainerrors.ErrReauthFailed)
}
