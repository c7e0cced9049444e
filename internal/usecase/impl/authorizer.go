package impl

import (
	"context"
	"fmt"
	"log/slog"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// authorizerService implements the Authorizer interface.
type authorizerService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthorizer is the constructor for authorizerService.
func NewAuthorizer(userRepo repository.UserRepository, logger *slog.Logger) usecase.Authorizer {
	return &authorizerService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Resolve reads the caller's user record.
func (srv *authorizerService) Resolve(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve user")
	}

	return user, nil
}

// Authorize checks the action against the role table. The caller performs no
// side effect when this fails.
func (srv *authorizerService) Authorize(action entity.Action, role entity.Role) error {
	if entity.Allowed(action, role) {
		return nil
	}

	return domainerrors.ErrForbidden.WithDetails(
		fmt.Sprintf("action %s requires role %v", action, entity.RequiredRoles(action)),
	)
}

// Require resolves the caller and authorizes the action in one step. Blocked
// users are rejected before the role check.
func (srv *authorizerService) Require(ctx context.Context, userID string, action entity.Action) (*entity.User, error) {
	user, err := srv.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	if err := srv.Authorize(action, user.Role); err != nil {
		log(ctx, srv.logger).WarnContext(ctx, "authorization denied",
			slog.String("user_id", userID),
			slog.String("role", user.Role.String()),
			slog.String("action", string(action)),
		)

		return nil, err
	}

	return user, nil
}
