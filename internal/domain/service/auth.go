package service

import "context"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier validates a bearer token issued by the auth collaborator and
// resolves the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Reauthenticator re-checks a user's password with the auth collaborator
// before sensitive profile changes such as an email update.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context, email, password string) error
}
