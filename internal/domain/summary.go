package domain

import "github.com/shopspring/decimal"

// CategoryAmount is spend aggregated under one category for a month.
// Spent is the absolute sum of negative-amount expenses, so it reads as a
// positive "money out" figure. Budget mirrors Category.MonthlyBudget and is
// nil when the category has no budget set.
type CategoryAmount struct {
	CategoryID   string           `json:"category_id,omitempty"` // empty for uncategorized
	CategoryName string           `json:"category_name"`
	Spent        decimal.Decimal  `json:"spent"`
	Budget       *decimal.Decimal `json:"budget,omitempty"`
	BudgetUsed   *decimal.Decimal `json:"budget_used_percent,omitempty"` // nil without a budget
}

// MonthSummary is the aggregation behind the monthly overview charts:
// totals for one calendar month plus a per-category breakdown.
type MonthSummary struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"` // 1-12
	Income     decimal.Decimal  `json:"income"`
	Spent      decimal.Decimal  `json:"spent"` // absolute value of money out
	Net        decimal.Decimal  `json:"net"`
	ByCategory []CategoryAmount `json:"by_category"`
}
