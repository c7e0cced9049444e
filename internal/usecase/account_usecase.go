package usecase

import (
	"context"

	"lapak/internal/domain/entity"
)

// --- Input DTOs ---

// AddSupervisorInput defines the data required to register a supervisor
// account.
type AddSupervisorInput struct {
	UserID   string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

// ChangeRoleInput defines a promote/demote request.
type ChangeRoleInput struct {
	TargetID string `validate:"required"`
	Role     string `validate:"required"`
}

// FileReportInput defines a customer complaint about another user.
type FileReportInput struct {
	ReportedID string `validate:"required"`
	Reason     string `validate:"required"`
}

// AccountUsecase defines the user administration and moderation operations.
type AccountUsecase interface {
	// ListUsers retrieves all accounts. Admin only.
	ListUsers(ctx context.Context, actorID string) ([]*entity.User, error)

	// AddSupervisor registers an existing auth account as a supervisor.
	// Admin only.
	AddSupervisor(ctx context.Context, actorID string, input AddSupervisorInput) (*entity.User, error)

	// ChangeRole promotes or demotes a user. Admin only; the stored level is
	// always rederived from the new role.
	ChangeRole(ctx context.Context, actorID string, input ChangeRoleInput) (*entity.User, error)

	// DeleteUser removes an account. Admin and supervisor.
	DeleteUser(ctx context.Context, actorID, targetID string) error

	// FileReport records a complaint with snapshots of both parties.
	FileReport(ctx context.Context, reporterID string, input FileReportInput) (*entity.Report, error)

	// ListReports retrieves all reports, newest first. Supervisor only.
	ListReports(ctx context.Context, actorID string) ([]*entity.Report, error)

	// SetBlocked blocks or unblocks the user named in a report. Supervisor
	// only.
	SetBlocked(ctx context.Context, actorID, targetID string, blocked bool) (*entity.User, error)
}
