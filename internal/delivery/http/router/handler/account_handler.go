package handler

import (
	"net/http"

	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/response"
	"lapak/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for administration and moderation handlers.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

type addSupervisorRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type setBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

type fileReportRequest struct {
	ReportedID string `json:"reportedId"`
	Reason     string `json:"reason"`
}

// ListUsers retrieves all accounts.
func (h *AccountHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// AddSupervisor registers a supervisor account.
func (h *AccountHandler) AddSupervisor(c echo.Context) error {
	var req addSupervisorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supervisor input")
	}

	supervisor, err := h.uc.AddSupervisor(c.Request().Context(), middleware.UserID(c), usecase.AddSupervisorInput{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, supervisor, "Supervisor added successfully")
}

// ChangeRole promotes or demotes a user.
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	user, err := h.uc.ChangeRole(c.Request().Context(), middleware.UserID(c), usecase.ChangeRoleInput{
		TargetID: c.Param("id"),
		Role:     req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Role changed successfully")
}

// DeleteUser removes an account.
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// SetBlocked flips the moderation flag on a user.
func (h *AccountHandler) SetBlocked(c echo.Context) error {
	var req setBlockedRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid moderation input")
	}

	user, err := h.uc.SetBlocked(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Blocked)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Moderation flag updated successfully")
}

// FileReport records a complaint about another user.
func (h *AccountHandler) FileReport(c echo.Context) error {
	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report input")
	}

	report, err := h.uc.FileReport(c.Request().Context(), middleware.UserID(c), usecase.FileReportInput{
		ReportedID: req.ReportedID,
		Reason:     req.Reason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, report, "Report filed successfully")
}

// ListReports retrieves all reports.
func (h *AccountHandler) ListReports(c echo.Context) error {
	reports, err := h.uc.ListReports(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reports, "Reports retrieved successfully")
}
