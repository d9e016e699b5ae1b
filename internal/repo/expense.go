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

// ExpenseRepo defines the persistence operations for Expenses.
// All operations are scoped by ownerID to enforce ownership.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense by its UUID, scoped to ownerID.
	// Returns domain.ErrNotFound if no such expense exists under that owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error)

	// List returns one page of the owner's expenses ordered by occurred_on
	// descending, plus the total count across all pages.
	List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error)

	// ListAll returns every expense for the owner ordered by occurred_on
	// ascending. Used by the export path.
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]domain.Expense, error)

	// Update overwrites the mutable fields of an expense and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// Delete removes an expense by ID, scoped to ownerID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

// Create inserts a new expense row and returns the full persisted record.
func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (owner_id, category_id, description, amount, occurred_on, notes)
		VALUES (@owner_id, @category_id, @description, @amount, @occurred_on, @notes)
		RETURNING id, owner_id, category_id, description, amount::text, occurred_on, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"owner_id":    e.OwnerID,
		"category_id": e.CategoryID, // nil becomes NULL
		"description": e.Description,
		"amount":      e.Amount.String(),
		"occurred_on": e.OccurredOn,
		"notes":       e.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an expense by primary key, scoped to the owner.
func (r *pgExpenseRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT id, owner_id, category_id, description, amount::text, occurred_on, notes, created_at, updated_at
		FROM expenses
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of expenses for the owner, most recent first,
// together with the total row count for pagination metadata.
func (r *pgExpenseRepo) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	const countQ = `SELECT count(*) FROM expenses WHERE owner_id = @owner_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.List: count: %w", mapError(err))
	}

	const q = `
		SELECT id, owner_id, category_id, description, amount::text, occurred_on, notes, created_at, updated_at
		FROM expenses
		WHERE owner_id = @owner_id
		ORDER BY occurred_on DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.List: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ExpenseRepo.List: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.List: rows: %w", err)
	}
	return expenses, total, nil
}

// ListAll returns every expense for the owner in chronological order.
func (r *pgExpenseRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT id, owner_id, category_id, description, amount::text, occurred_on, notes, created_at, updated_at
		FROM expenses
		WHERE owner_id = @owner_id
		ORDER BY occurred_on ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListAll: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListAll: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListAll: rows: %w", err)
	}
	return expenses, nil
}

// Update overwrites the mutable fields of an expense and returns the updated record.
func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET category_id = @category_id,
		    description = @description,
		    amount      = @amount,
		    occurred_on = @occurred_on,
		    notes       = @notes,
		    updated_at  = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING id, owner_id, category_id, description, amount::text, occurred_on, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          e.ID,
		"owner_id":    e.OwnerID,
		"category_id": e.CategoryID,
		"description": e.Description,
		"amount":      e.Amount.String(),
		"occurred_on": e.OccurredOn,
		"notes":       e.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense by primary key, scoped to the owner.
// Links in expense_tags cascade at the database level.
func (r *pgExpenseRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExpense maps a single database row into a domain.Expense.
// It handles the UUID, nullable category_id, and numeric-as-text conversions.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e          domain.Expense
		id         pgtype.UUID
		ownerID    pgtype.UUID
		categoryID pgtype.UUID
		amount     string
		occurredOn pgtype.Date
	)

	err := s.Scan(&id, &ownerID, &categoryID, &e.Description, &amount, &occurredOn, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Expense{}, mapError(err)
	}

	e.ID = uuid.UUID(id.Bytes)
	e.OwnerID = uuid.UUID(ownerID.Bytes)
	if categoryID.Valid {
		cid := uuid.UUID(categoryID.Bytes)
		e.CategoryID = &cid
	}
	e.OccurredOn = occurredOn.Time

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return e, nil
}
