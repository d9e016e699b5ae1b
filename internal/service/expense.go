// Package service implements the business rules of the Centsible API.
// Services validate input, orchestrate repos, and own the partial-failure
// policy around tag synchronization. No SQL and no HTTP concerns live here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
)

// TagSyncer is the reconciliation contract the expense service depends on.
// tagsync.Syncer implements it. The returned slice holds one message per tag
// that failed to sync; it is empty on full success and is never an error —
// the expense write preceding the sync is already committed and stands.
type TagSyncer interface {
	Sync(ctx context.Context, ownerID, expenseID uuid.UUID, raw string) []string
}

// ExpenseService implements business logic for Expense operations.
// It holds the category repo because persisting an expense with a category
// requires verifying the category belongs to the same owner.
type ExpenseService struct {
	expenses   repo.ExpenseRepo
	categories repo.CategoryRepo
	syncer     TagSyncer
}

// NewExpenseService constructs an ExpenseService backed by the provided
// repos and tag syncer.
func NewExpenseService(expenses repo.ExpenseRepo, categories repo.CategoryRepo, syncer TagSyncer) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories, syncer: syncer}
}

// Create validates and persists a new expense, then reconciles its tags from
// rawTags. The expense write is the primary operation: once it succeeds it is
// never rolled back, and tag failures come back as warning strings alongside
// the persisted record.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the referenced category does not exist.
func (s *ExpenseService) Create(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error) {
	if err := s.validateExpense(ctx, e); err != nil {
		return domain.Expense{}, nil, err
	}

	result, err := s.expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, nil, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}

	warnings := s.syncer.Sync(ctx, result.OwnerID, result.ID, rawTags)
	return result, warnings, nil
}

// GetByID returns a single expense by ID, scoped to the owner.
// Returns domain.ErrNotFound if no such expense exists.
func (s *ExpenseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of the owner's expenses, most recent first, plus the
// total count. Always returns a non-nil slice so callers can safely range.
func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	expenses, total, err := s.expenses.List(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, total, nil
}

// Update validates and persists changes to an existing expense, then
// reconciles its tags from rawTags under the same partial-failure policy as
// Create.
func (s *ExpenseService) Update(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error) {
	if err := s.validateExpense(ctx, e); err != nil {
		return domain.Expense{}, nil, err
	}

	result, err := s.expenses.Update(ctx, e)
	if err != nil {
		return domain.Expense{}, nil, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}

	warnings := s.syncer.Sync(ctx, result.OwnerID, result.ID, rawTags)
	return result, warnings, nil
}

// Delete removes an expense by ID, scoped to the owner. Tag links cascade in
// the database. Returns domain.ErrNotFound if the expense does not exist.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces business rules common to Create and Update.
//   - Description must be non-empty (whitespace-only is rejected).
//   - OccurredOn must be set.
//   - A referenced category must exist under the same owner.
func (s *ExpenseService) validateExpense(ctx context.Context, e domain.Expense) error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if e.OccurredOn.IsZero() {
		return fmt.Errorf("%w: occurred_on is required", domain.ErrValidation)
	}
	if e.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, e.OwnerID, *e.CategoryID); err != nil {
			return fmt.Errorf("service.ExpenseService: category: %w", err)
		}
	}
	return nil
}
