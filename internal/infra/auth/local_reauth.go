package auth

import (
	"context"

	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// localReauthenticator checks passwords against a bcrypt hash from
// configuration. With no hash configured it accepts any non-empty password,
// which keeps local development friction-free.
type localReauthenticator struct {
	passwordHash string
}

// NewLocalReauthenticator creates a Reauthenticator for the local provider.
func NewLocalReauthenticator(passwordHash string) service.Reauthenticator {
	return &localReauthenticator{passwordHash: passwordHash}
}

func (r *localReauthenticator) Reauthenticate(_ context.Context, _, password string) error {
	if password == "" {
		return domainerrors.ErrReauthFailed
	}

	if r.passwordHash == "" {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(r.passwordHash), []byte(password)); err != nil {
		return domainerrors.ErrReauthFailed
	}

	return nil
}
