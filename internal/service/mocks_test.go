package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
	"github.com/centsible/backend/internal/service"
)

// Function-field mocks shared by the service tests. Unset fields panic on
// use, which makes an unexpected repo call an immediate test failure.

// ---- mock ExpenseRepo ------------------------------------------------------

type mockExpenseRepo struct {
	create  func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID func(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error)
	list    func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error)
	listAll func(ctx context.Context, ownerID uuid.UUID) ([]domain.Expense, error)
	update  func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete  func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockExpenseRepo) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	return m.list(ctx, ownerID, p)
}
func (m *mockExpenseRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]domain.Expense, error) {
	return m.listAll(ctx, ownerID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

// ---- mock CategoryRepo -----------------------------------------------------

type mockCategoryRepo struct {
	create      func(ctx context.Context, c domain.Category) (domain.Category, error)
	getByID     func(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	update      func(ctx context.Context, c domain.Category) (domain.Category, error)
	delete      func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockCategoryRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.update(ctx, c)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ repo.CategoryRepo = (*mockCategoryRepo)(nil)

// ---- mock TagRepo ----------------------------------------------------------

type mockTagRepo struct {
	list          func(ctx context.Context, ownerID uuid.UUID, prefix string) ([]domain.Tag, error)
	listPaged     func(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	listByExpense func(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error)
}

func (m *mockTagRepo) List(ctx context.Context, ownerID uuid.UUID, prefix string) ([]domain.Tag, error) {
	return m.list(ctx, ownerID, prefix)
}
func (m *mockTagRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, ownerID, prefix, p)
}
func (m *mockTagRepo) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error) {
	return m.listByExpense(ctx, expenseID)
}

var _ repo.TagRepo = (*mockTagRepo)(nil)

// ---- mock SummaryRepo ------------------------------------------------------

type mockSummaryRepo struct {
	month func(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error)
}

func (m *mockSummaryRepo) Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error) {
	return m.month(ctx, ownerID, year, month)
}

var _ repo.SummaryRepo = (*mockSummaryRepo)(nil)

// ---- mock TagSyncer --------------------------------------------------------

type mockTagSyncer struct {
	sync func(ctx context.Context, ownerID, expenseID uuid.UUID, raw string) []string
}

func (m *mockTagSyncer) Sync(ctx context.Context, ownerID, expenseID uuid.UUID, raw string) []string {
	if m.sync == nil {
		return []string{}
	}
	return m.sync(ctx, ownerID, expenseID, raw)
}

var _ service.TagSyncer = (*mockTagSyncer)(nil)
