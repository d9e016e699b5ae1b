package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag represents a free-form label a user attaches to expenses.
// Tags are owner-scoped: Name is case-insensitively unique per OwnerID,
// enforced by a database uniqueness constraint rather than application
// locking. Name preserves the casing of the first literal occurrence that
// created the tag. A tag is created on first use and never updated.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
