package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/domain"
)

// CategoryRepo defines the persistence operations for Categories.
// All operations are scoped by ownerID to enforce ownership.
type CategoryRepo interface {
	// Create inserts a new category and returns the persisted record.
	// Returns domain.ErrConflict if the owner already has a category with
	// the same name (case-insensitive).
	Create(ctx context.Context, c domain.Category) (domain.Category, error)

	// GetByID retrieves a single category by its UUID, scoped to ownerID.
	// Returns domain.ErrNotFound if no such category exists under that owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error)

	// ListByOwner returns all of the owner's categories ordered by name.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)

	// Update overwrites name and monthly_budget and returns the updated record.
	// Returns domain.ErrNotFound if the category does not exist,
	// domain.ErrConflict if the new name collides with another category.
	Update(ctx context.Context, c domain.Category) (domain.Category, error)

	// Delete removes a category by ID, scoped to ownerID. Expenses referencing
	// it are set to uncategorized at the database level.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

func (r *pgCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO categories (owner_id, name, monthly_budget)
		VALUES (@owner_id, @name, @monthly_budget)
		RETURNING id, owner_id, name, monthly_budget::text, created_at`

	args := pgx.NamedArgs{
		"owner_id":       c.OwnerID,
		"name":           c.Name,
		"monthly_budget": budgetArg(c.MonthlyBudget),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error) {
	const q = `
		SELECT id, owner_id, name, monthly_budget::text, created_at
		FROM categories
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	const q = `
		SELECT id, owner_id, name, monthly_budget::text, created_at
		FROM categories
		WHERE owner_id = @owner_id
		ORDER BY lower(name)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.ListByOwner: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListByOwner: rows: %w", err)
	}
	return categories, nil
}

func (r *pgCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	const q = `
		UPDATE categories
		SET name           = @name,
		    monthly_budget = @monthly_budget
		WHERE id = @id AND owner_id = @owner_id
		RETURNING id, owner_id, name, monthly_budget::text, created_at`

	args := pgx.NamedArgs{
		"id":             c.ID,
		"owner_id":       c.OwnerID,
		"name":           c.Name,
		"monthly_budget": budgetArg(c.MonthlyBudget),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM categories WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// budgetArg converts an optional decimal to a SQL argument, nil becoming NULL.
func budgetArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// scanCategory maps a single database row into a domain.Category.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c       domain.Category
		id      pgtype.UUID
		ownerID pgtype.UUID
		budget  *string
	)

	err := s.Scan(&id, &ownerID, &c.Name, &budget, &c.CreatedAt)
	if err != nil {
		return domain.Category{}, mapError(err)
	}

	c.ID = uuid.UUID(id.Bytes)
	c.OwnerID = uuid.UUID(ownerID.Bytes)
	if budget != nil {
		b, err := decimal.NewFromString(*budget)
		if err != nil {
			return domain.Category{}, fmt.Errorf("parse monthly_budget %q: %w", *budget, err)
		}
		c.MonthlyBudget = &b
	}
	return c, nil
}
