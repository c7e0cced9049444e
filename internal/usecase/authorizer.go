// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"lapak/internal/domain/entity"
)

// Authorizer resolves the caller's identity record and checks role-gated
// actions. Every workflow controller authorizes through it before performing
// any side effect.
type Authorizer interface {
	// Resolve reads the caller's user record. Blocked users resolve with
	// Blocked set; unknown roles degrade to customer.
	Resolve(ctx context.Context, userID string) (*entity.User, error)

	// Authorize checks the action against the role table. A disallowed pair
	// returns an AuthorizationError naming the roles the action requires.
	Authorize(action entity.Action, role entity.Role) error

	// Require resolves the caller and authorizes the action in one step.
	Require(ctx context.Context, userID string, action entity.Action) (*entity.User, error)
}
