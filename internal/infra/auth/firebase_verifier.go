// Package auth provides the token verification and re-authentication
// collaborators.
package auth

import (
	"context"

	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// firebaseVerifier validates ID tokens issued by the auth collaborator.
type firebaseVerifier struct {
	client *firebaseauth.Client
}

// NewFirebaseVerifier wraps an initialized auth client.
func NewFirebaseVerifier(client *firebaseauth.Client) service.TokenVerifier {
	return &firebaseVerifier{client: client}
}

// Verify validates the ID token and resolves the caller's identity.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*service.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithDetails(err.Error())
	}

	email, _ := decoded.Claims["email"].(string)

	return &service.Identity{
		UserID: decoded.UID,
		Email:  email,
	}, nil
}
