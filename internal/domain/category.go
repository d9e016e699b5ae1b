package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a user-defined spending category.
// MonthlyBudget is the budget ceiling for one calendar month; nil means the
// category has no budget set.
type Category struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	Name          string           `json:"name"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
