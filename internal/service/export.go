package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
)

// ExportService assembles a full flat export of the owner's expenses with
// category names and tag lists resolved, one row per expense.
type ExportService struct {
	expenses   repo.ExpenseRepo
	categories repo.CategoryRepo
	tags       repo.TagRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(expenses repo.ExpenseRepo, categories repo.CategoryRepo, tags repo.TagRepo) *ExportService {
	return &ExportService{expenses: expenses, categories: categories, tags: tags}
}

// Export returns one ExportRow per expense in chronological order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExportService) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	expenses, err := s.expenses.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	categories, err := s.categories.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	rows := make([]domain.ExportRow, 0, len(expenses))
	for _, e := range expenses {
		row := domain.ExportRow{
			ExpenseID:   e.ID.String(),
			Description: e.Description,
			Amount:      e.Amount.StringFixed(2),
			OccurredOn:  e.OccurredOn.Format("2006-01-02"),
			Notes:       e.Notes,
			Tags:        []string{},
		}
		if e.CategoryID != nil {
			row.Category = categoryNames[*e.CategoryID]
		}

		tags, err := s.tags.ListByExpense(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: tags for %s: %w", e.ID, err)
		}
		for _, t := range tags {
			row.Tags = append(row.Tags, t.Name)
		}

		rows = append(rows, row)
	}
	return rows, nil
}
