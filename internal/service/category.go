package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
)

// CategoryService implements business logic for Category operations.
type CategoryService struct {
	categories repo.CategoryRepo
}

// NewCategoryService constructs a CategoryService backed by the provided repo.
func NewCategoryService(categories repo.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create validates and persists a new category.
// Returns domain.ErrValidation for invalid input, domain.ErrConflict when the
// owner already has a category with the same name.
func (s *CategoryService) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	if err := validateCategory(c); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Create(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single category by ID, scoped to the owner.
func (s *CategoryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error) {
	result, err := s.categories.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of the owner's categories ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	categories, err := s.categories.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Update validates and persists changes to an existing category.
func (s *CategoryService) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	if err := validateCategory(c); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Update(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a category by ID, scoped to the owner. Expenses referencing
// it become uncategorized. Returns domain.ErrNotFound if it does not exist.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.CategoryService.Delete: %w", err)
	}
	return nil
}

// validateCategory enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - MonthlyBudget, when set, must not be negative.
func validateCategory(c domain.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if c.MonthlyBudget != nil && c.MonthlyBudget.IsNegative() {
		return fmt.Errorf("%w: monthly_budget must not be negative", domain.ErrValidation)
	}
	return nil
}
