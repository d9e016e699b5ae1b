package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/centsible/backend/internal/domain"
)

// TagStore is the Postgres implementation of the store interface the tag
// sync engine depends on (tagsync.Store). It deliberately uses plain INSERTs
// with no ON CONFLICT clause: uniqueness violations must surface as
// domain.ErrConflict so the engine can resolve creation races by re-lookup
// and treat duplicate links as already-achieved state.
//
// Construct one TagStore per connection: the identity-scoped pool for the
// primary path and the elevated pool for the fallback path.
type TagStore struct {
	db db
}

// NewTagStore constructs a TagStore backed by the provided db connection.
func NewTagStore(db db) *TagStore {
	return &TagStore{db: db}
}

// FindTagByName looks up the owner's tag by case-insensitive name.
// Returns (nil, nil) when no such tag exists — absence is a successful
// lookup result for the sync engine, not an error worth retrying.
func (s *TagStore) FindTagByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tag, error) {
	const q = `
		SELECT id, owner_id, name, created_at
		FROM tags
		WHERE owner_id = @owner_id AND lower(name) = lower(@name)`

	row := s.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "name": name})
	result, err := scanTag(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("repo.TagStore.FindTagByName: %w", err)
	}
	return &result, nil
}

// CreateTag inserts a new tag for the owner and returns the persisted record.
// Returns domain.ErrConflict when the owner already has the name
// (case-insensitive) — the signal another caller won the creation race.
func (s *TagStore) CreateTag(ctx context.Context, ownerID uuid.UUID, name string) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (owner_id, name)
		VALUES (@owner_id, @name)
		RETURNING id, owner_id, name, created_at`

	row := s.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "name": name})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagStore.CreateTag: %w", err)
	}
	return result, nil
}

// ListExpenseTags returns all tags currently linked to the expense.
func (s *TagStore) ListExpenseTags(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.owner_id, t.name, t.created_at
		FROM tags t
		JOIN expense_tags et ON et.tag_id = t.id
		WHERE et.expense_id = @expense_id
		ORDER BY t.name`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"expense_id": expenseID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagStore.ListExpenseTags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows, "repo.TagStore.ListExpenseTags")
}

// LinkTag inserts an expense→tag link.
// Returns domain.ErrConflict when the link already exists.
func (s *TagStore) LinkTag(ctx context.Context, expenseID, tagID uuid.UUID) error {
	const q = `
		INSERT INTO expense_tags (expense_id, tag_id)
		VALUES (@expense_id, @tag_id)`

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{"expense_id": expenseID, "tag_id": tagID})
	if err != nil {
		return fmt.Errorf("repo.TagStore.LinkTag: %w", mapError(err))
	}
	return nil
}

// UnlinkTags deletes the expense's links to every tag in tagIDs in one
// statement. Deleting links that are already gone is not an error.
func (s *TagStore) UnlinkTags(ctx context.Context, expenseID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	const q = `
		DELETE FROM expense_tags
		WHERE expense_id = @expense_id AND tag_id = ANY(@tag_ids)`

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{"expense_id": expenseID, "tag_ids": tagIDs})
	if err != nil {
		return fmt.Errorf("repo.TagStore.UnlinkTags: %w", mapError(err))
	}
	return nil
}
