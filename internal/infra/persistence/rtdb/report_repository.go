package rtdb

import (
	"context"
	"sort"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// reportRepository implements repository.ReportRepository over the document store.
type reportRepository struct {
	store service.DocumentStore
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(store service.DocumentStore) repository.ReportRepository {
	return &reportRepository{store: store}
}

// FindByID retrieves a single report.
func (repo *reportRepository) FindByID(ctx context.Context, id string) (*entity.Report, error) {
	var doc model.ReportDoc
	if err := repo.store.Get(ctx, reportPath(id), &doc); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find report by id")
	}

	return toReportDomain(id, &doc), nil
}

// List retrieves all reports, newest first.
func (repo *reportRepository) List(ctx context.Context) ([]*entity.Report, error) {
	var docs map[string]model.ReportDoc
	if err := repo.store.Get(ctx, reportsPath, &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list reports")
	}

	reports := make([]*entity.Report, 0, len(docs))
	for id, doc := range docs {
		reports = append(reports, toReportDomain(id, &doc))
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID > reports[j].ID })

	return reports, nil
}

// Create persists a new report under a server-generated key and returns the key.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) (string, error) {
	doc := model.ReportDoc{
		Reporter:  fromSnapshotDomain(report.Reporter),
		Reported:  fromSnapshotDomain(report.Reported),
		Reason:    report.Reason,
		CreatedAt: repo.store.ServerTimestamp(),
	}

	key, err := repo.store.Push(ctx, reportsPath, doc)
	if err != nil {
		return "", domainerrors.NewStoreExecuteError(err, "failed to create report")
	}

	return key, nil
}

func toReportDomain(id string, doc *model.ReportDoc) *entity.Report {
	return &entity.Report{
		ID:        id,
		Reporter:  toSnapshotDomain(doc.Reporter),
		Reported:  toSnapshotDomain(doc.Reported),
		Reason:    doc.Reason,
		CreatedAt: model.TimeOf(doc.CreatedAt),
	}
}
