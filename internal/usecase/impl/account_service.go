package impl

import (
	"context"
	"log/slog"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
	authorizer usecase.Authorizer
	logger     *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	authorizer usecase.Authorizer,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListUsers retrieves all accounts. Admin only.
func (srv *accountService) ListUsers(ctx context.Context, actorID string) ([]*entity.User, error) {
	actor, err := srv.authorizer.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleAdmin {
		return nil, domainerrors.ErrForbidden.WithDetails("user listing requires the admin role")
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// AddSupervisor registers an existing auth account as a supervisor.
func (srv *accountService) AddSupervisor(ctx context.Context, actorID string, input usecase.AddSupervisorInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionAddSupervisor); err != nil {
		return nil, err
	}

	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err == nil {
		return nil, domainerrors.ErrConflict.WithDetails("account already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check account")
	}

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	supervisor := &entity.User{
		ID:       input.UserID,
		Username: input.Username,
		Email:    input.Email,
		Role:     entity.RoleSupervisor,
	}
	if err := srv.userRepo.Create(ctx, supervisor); err != nil {
		return nil, errors.Wrap(err, "failed to create supervisor")
	}

	log(ctx, srv.logger).InfoContext(ctx, "supervisor added",
		slog.String("user_id", input.UserID),
		slog.String("actor_id", actorID),
	)

	return supervisor, nil
}

// ChangeRole promotes or demotes a user. The stored level is always rederived
// from the new role; an unrecognized role is rejected, never promoted.
func (srv *accountService) ChangeRole(ctx context.Context, actorID string, input usecase.ChangeRoleInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role: " + input.Role)
	}

	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionPromoteOrDemoteUser); err != nil {
		return nil, err
	}

	target, err := srv.findUser(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	if err := srv.userRepo.UpdateRole(ctx, input.TargetID, role); err != nil {
		return nil, errors.Wrap(err, "failed to change role")
	}
	target.Role = role

	log(ctx, srv.logger).InfoContext(ctx, "role changed",
		slog.String("target_id", input.TargetID),
		slog.String("role", role.String()),
		slog.String("actor_id", actorID),
	)

	return target, nil
}

// DeleteUser removes an account. Admin accounts cannot be deleted.
func (srv *accountService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionDeleteUser); err != nil {
		return err
	}

	target, err := srv.findUser(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == entity.RoleAdmin {
		return domainerrors.ErrForbidden.WithDetails("admin accounts cannot be deleted")
	}

	if err := srv.userRepo.Delete(ctx, targetID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	log(ctx, srv.logger).InfoContext(ctx, "user deleted",
		slog.String("target_id", targetID),
		slog.String("actor_id", actorID),
	)

	return nil
}

// FileReport records a complaint with snapshots of both parties taken now.
func (srv *accountService) FileReport(ctx context.Context, reporterID string, input usecase.FileReportInput) (*entity.Report, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.ReportedID == reporterID {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cannot report yourself")
	}

	reporter, err := srv.authorizer.Resolve(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if reporter.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	reported, err := srv.findUser(ctx, input.ReportedID)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		Reporter: reporter.Snapshot(),
		Reported: reported.Snapshot(),
		Reason:   input.Reason,
	}
	id, err := srv.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create report")
	}
	report.ID = id

	return report, nil
}

// ListReports retrieves all reports, newest first. Supervisor only.
func (srv *accountService) ListReports(ctx context.Context, actorID string) ([]*entity.Report, error) {
	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionBlockUser); err != nil {
		return nil, err
	}

	reports, err := srv.reportRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	return reports, nil
}

// SetBlocked blocks or unblocks a reported user. Admin accounts cannot be
// blocked.
func (srv *accountService) SetBlocked(ctx context.Context, actorID, targetID string, blocked bool) (*entity.User, error) {
	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionBlockUser); err != nil {
		return nil, err
	}

	target, err := srv.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role == entity.RoleAdmin {
		return nil, domainerrors.ErrForbidden.WithDetails("admin accounts cannot be blocked")
	}

	if err := srv.userRepo.SetBlocked(ctx, targetID, blocked); err != nil {
		return nil, errors.Wrap(err, "failed to set blocked flag")
	}
	target.Blocked = blocked

	log(ctx, srv.logger).InfoContext(ctx, "moderation flag updated",
		slog.String("target_id", targetID),
		slog.Bool("blocked", blocked),
		slog.String("actor_id", actorID),
	)

	return target, nil
}

func (srv *accountService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
