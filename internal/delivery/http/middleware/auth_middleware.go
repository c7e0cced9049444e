package middleware

import (
	"strings"

	deliverycontext "lapak/internal/delivery/context"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyUserID is the echo context key holding the authenticated user's ID.
const KeyUserID = "userID"

// AuthMiddleware resolves the caller's identity from the bearer token issued
// by the auth collaborator. Role checks stay in the application layer; the
// middleware only authenticates.
type AuthMiddleware struct {
	verifier service.TokenVerifier
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates the bearer token and stores the caller's user ID on
// both the echo context and the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrInvalidToken.WithDetails("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrInvalidToken.WithDetails("must be a Bearer token")
		}

		identity, err := m.verifier.Verify(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(KeyUserID, identity.UserID)
		ctx := deliverycontext.WithUserID(c.Request().Context(), identity.UserID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// UserID extracts the authenticated user's ID set by Authenticate.
func UserID(c echo.Context) string {
	if id, ok := c.Get(KeyUserID).(string); ok {
		return id
	}

	return ""
}
