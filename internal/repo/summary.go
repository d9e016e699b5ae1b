package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/domain"
)

// SummaryRepo defines the aggregation queries behind the monthly overview.
type SummaryRepo interface {
	// Month returns income/spend totals and a per-category spend breakdown
	// for the owner's expenses in one calendar month. Budget percentages are
	// left nil here; the service layer derives them.
	Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error)
}

// pgSummaryRepo is the Postgres implementation of SummaryRepo.
type pgSummaryRepo struct {
	db db
}

// NewSummaryRepo constructs a SummaryRepo backed by the provided db connection.
func NewSummaryRepo(db db) SummaryRepo {
	return &pgSummaryRepo{db: db}
}

// Month aggregates one calendar month of expenses.
// Spend figures are reported as positive "money out" values even though
// spending rows carry negative amounts.
func (r *pgSummaryRepo) Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error) {
	summary := domain.MonthSummary{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Spent:      decimal.Zero,
		Net:        decimal.Zero,
		ByCategory: []domain.CategoryAmount{},
	}

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"start":    fmt.Sprintf("%04d-%02d-01", year, month),
	}

	const totalsQ = `
		SELECT
			COALESCE(sum(amount) FILTER (WHERE amount > 0), 0)::text,
			COALESCE(-sum(amount) FILTER (WHERE amount < 0), 0)::text
		FROM expenses
		WHERE owner_id = @owner_id
		  AND occurred_on >= @start::date
		  AND occurred_on < @start::date + interval '1 month'`

	var income, spent string
	if err := r.db.QueryRow(ctx, totalsQ, args).Scan(&income, &spent); err != nil {
		return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: totals: %w", mapError(err))
	}

	var err error
	if summary.Income, err = decimal.NewFromString(income); err != nil {
		return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: parse income %q: %w", income, err)
	}
	if summary.Spent, err = decimal.NewFromString(spent); err != nil {
		return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: parse spent %q: %w", spent, err)
	}
	summary.Net = summary.Income.Sub(summary.Spent)

	const byCategoryQ = `
		SELECT
			COALESCE(c.id::text, ''),
			COALESCE(c.name, ''),
			(-sum(e.amount))::text,
			c.monthly_budget::text
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.owner_id = @owner_id
		  AND e.occurred_on >= @start::date
		  AND e.occurred_on < @start::date + interval '1 month'
		  AND e.amount < 0
		GROUP BY c.id, c.name, c.monthly_budget
		ORDER BY 3 DESC`

	rows, err := r.db.Query(ctx, byCategoryQ, args)
	if err != nil {
		return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ca     domain.CategoryAmount
			spent  string
			budget *string
		)
		if err := rows.Scan(&ca.CategoryID, &ca.CategoryName, &spent, &budget); err != nil {
			return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: scan: %w", err)
		}
		if ca.Spent, err = decimal.NewFromString(spent); err != nil {
			return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: parse spent %q: %w", spent, err)
		}
		if budget != nil {
			b, err := decimal.NewFromString(*budget)
			if err != nil {
				return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: parse budget %q: %w", *budget, err)
			}
			ca.Budget = &b
		}
		summary.ByCategory = append(summary.ByCategory, ca)
	}
	if err := rows.Err(); err != nil {
		return domain.MonthSummary{}, fmt.Errorf("repo.SummaryRepo.Month: rows: %w", err)
	}

	return summary, nil
}
