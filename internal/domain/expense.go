// Package domain contains the core data types for the Centsible application.
// This package has zero heavy dependencies and is imported by every other
// internal package (repo, tagsync, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single financial record owned by a user.
// Amount is signed: negative values are spending, positive values are income.
// CategoryID is nil for uncategorized records.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredOn  time.Time       `json:"occurred_on"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
