// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "lapak/internal/delivery/context"
	domainerrors "lapak/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// log returns the request-scoped logger, falling back to the service logger.
func log(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

//nolint:gochecknoglobals
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks the struct tags on an input DTO. A failure resolves
// locally, before any store access.
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
