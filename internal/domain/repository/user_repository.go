// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"lapak/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List retrieves all users in storage order.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity keyed by its ID.
	Create(ctx context.Context, user *entity.User) error

	// Update merges the mutable profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// UpdateRole rewrites the user's role together with its derived level.
	UpdateRole(ctx context.Context, id string, role entity.Role) error

	// SetBlocked flips the moderation flag on the user.
	SetBlocked(ctx context.Context, id string, blocked bool) error

	// Delete removes the user record.
	Delete(ctx context.Context, id string) error
}
