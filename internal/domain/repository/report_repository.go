package repository

import (
	"context"
	"errors"

	"lapak/internal/domain/entity"
)

// ErrReportNotFound is returned when a report lookup misses.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository defines the operations for moderation report persistence.
type ReportRepository interface {
	// FindByID retrieves a single report.
	FindByID(ctx context.Context, id string) (*entity.Report, error)

	// List retrieves all reports, newest first.
	List(ctx context.Context) ([]*entity.Report, error)

	// Create persists a new report under a server-generated key and returns the key.
	Create(ctx context.Context, report *entity.Report) (string, error)
}
