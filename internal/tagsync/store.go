// Package tagsync reconciles an expense's persisted tag set against the
// free-form, comma-separated tag string supplied by the user.
//
// The package has two halves: Executor, a retry/fallback wrapper around a
// pair of store connections, and Syncer, the engine that computes and applies
// the minimal set of tag creations, link additions, and link removals. The
// engine tolerates transient store failures and concurrent tag creation by
// other clients, and reports per-tag failures instead of failing the batch.
package tagsync

import (
	"context"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
)

// Store is the narrow persistence contract the engine runs against.
// repo.TagStore implements it. Two instances are wired into the Executor:
// one on the identity-scoped connection and one on the elevated connection.
//
// Error contract:
//   - FindTagByName returns (nil, nil) when the tag does not exist; an
//     absent tag is a successful lookup, not a failure to retry.
//   - CreateTag returns domain.ErrConflict when the owner already has the
//     name (case-insensitive) — the concurrent-creation signal.
//   - LinkTag returns domain.ErrConflict when the link already exists.
type Store interface {
	FindTagByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tag, error)
	CreateTag(ctx context.Context, ownerID uuid.UUID, name string) (domain.Tag, error)
	ListExpenseTags(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error)
	LinkTag(ctx context.Context, expenseID, tagID uuid.UUID) error
	UnlinkTags(ctx context.Context, expenseID uuid.UUID, tagIDs []uuid.UUID) error
}
