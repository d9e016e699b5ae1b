package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/centsible/backend/internal/domain"
)

// TagRepo defines the read-side persistence operations for Tags, serving the
// tag listing endpoints. Write-side operations used by the sync engine live
// on TagStore.
type TagRepo interface {
	// List returns the owner's tags whose name starts with prefix, ordered
	// by name. If prefix is empty, all tags are returned.
	List(ctx context.Context, ownerID uuid.UUID, prefix string) ([]domain.Tag, error)

	// ListPaged returns one page of the owner's tags matching the name
	// prefix and the total count across all pages.
	ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)

	// ListByExpense returns all tags linked to an expense, ordered by name.
	ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// List returns all of the owner's tags whose name starts with prefix.
// Pass prefix="" to return all tags.
func (r *pgTagRepo) List(ctx context.Context, ownerID uuid.UUID, prefix string) ([]domain.Tag, error) {
	const q = `
		SELECT id, owner_id, name, created_at
		FROM tags
		WHERE owner_id = @owner_id AND name LIKE @prefix || '%'
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	defer rows.Close()

	return collectTags(rows, "repo.TagRepo.List")
}

// ListPaged returns one page of the owner's tags matching prefix plus the
// total match count for pagination metadata.
func (r *pgTagRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	const countQ = `
		SELECT count(*)
		FROM tags
		WHERE owner_id = @owner_id AND name LIKE @prefix || '%'`

	var total int64
	err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID, "prefix": prefix}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: count: %w", mapError(err))
	}

	const q = `
		SELECT id, owner_id, name, created_at
		FROM tags
		WHERE owner_id = @owner_id AND name LIKE @prefix || '%'
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"prefix":   prefix,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	tags, err := collectTags(rows, "repo.TagRepo.ListPaged")
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// ListByExpense returns all tags linked to an expense, ordered by name.
func (r *pgTagRepo) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.owner_id, t.name, t.created_at
		FROM tags t
		JOIN expense_tags et ON et.tag_id = t.id
		WHERE et.expense_id = @expense_id
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"expense_id": expenseID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByExpense: %w", err)
	}
	defer rows.Close()

	return collectTags(rows, "repo.TagRepo.ListByExpense")
}

// collectTags drains rows into a slice, wrapping errors with op for context.
func collectTags(rows pgx.Rows, op string) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t       domain.Tag
		id      pgtype.UUID
		ownerID pgtype.UUID
	)
	err := s.Scan(&id, &ownerID, &t.Name, &t.CreatedAt)
	if err != nil {
		return domain.Tag{}, mapError(err)
	}
	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	return t, nil
}
