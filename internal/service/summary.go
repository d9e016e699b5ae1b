package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
)

// hundred is the multiplier for budget-used percentages.
var hundred = decimal.NewFromInt(100)

// SummaryService produces the monthly overview behind the charts: totals,
// per-category spend, and budget usage.
type SummaryService struct {
	summaries repo.SummaryRepo
}

// NewSummaryService constructs a SummaryService backed by the provided repo.
func NewSummaryService(summaries repo.SummaryRepo) *SummaryService {
	return &SummaryService{summaries: summaries}
}

// Month returns the owner's summary for one calendar month, with
// budget-used percentages filled in for every category carrying a budget.
// Returns domain.ErrValidation when year/month are out of range.
func (s *SummaryService) Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error) {
	if month < 1 || month > 12 {
		return domain.MonthSummary{}, fmt.Errorf("%w: month must be 1-12", domain.ErrValidation)
	}
	if year < 1970 || year > 9999 {
		return domain.MonthSummary{}, fmt.Errorf("%w: year out of range", domain.ErrValidation)
	}

	summary, err := s.summaries.Month(ctx, ownerID, year, month)
	if err != nil {
		return domain.MonthSummary{}, fmt.Errorf("service.SummaryService.Month: %w", err)
	}

	for i, ca := range summary.ByCategory {
		if ca.Budget == nil || ca.Budget.IsZero() {
			continue
		}
		used := ca.Spent.Div(*ca.Budget).Mul(hundred).Round(1)
		summary.ByCategory[i].BudgetUsed = &used
	}
	return summary, nil
}
