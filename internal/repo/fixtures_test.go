package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
	"github.com/centsible/backend/testutil"
)

// testRepos bundles every repo implementation over one shared transaction so
// tests can build full hierarchies (category → expense → tags) that are
// rolled back automatically when the test finishes.
type testRepos struct {
	owner      uuid.UUID
	expenses   repo.ExpenseRepo
	categories repo.CategoryRepo
	tags       repo.TagRepo
	tagStore   *repo.TagStore
	summaries  repo.SummaryRepo
}

// newTestRepos opens a single transaction and returns all repos backed by it.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		owner:      uuid.New(),
		expenses:   repo.NewExpenseRepo(tx),
		categories: repo.NewCategoryRepo(tx),
		tags:       repo.NewTagRepo(tx),
		tagStore:   repo.NewTagStore(tx),
		summaries:  repo.NewSummaryRepo(tx),
	}
}

// expenseFixture returns a valid expense for the owner: a grocery run on a
// fixed date so summary tests can aggregate deterministically.
func expenseFixture(ownerID uuid.UUID) domain.Expense {
	return domain.Expense{
		OwnerID:     ownerID,
		Description: "groceries",
		Amount:      decimal.RequireFromString("-42.50"),
		OccurredOn:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

// mustCreateExpense persists an expenseFixture and fails the test on error.
func mustCreateExpense(t *testing.T, r testRepos) domain.Expense {
	t.Helper()
	e, err := r.expenses.Create(context.Background(), expenseFixture(r.owner))
	require.NoError(t, err, "create expense fixture")
	return e
}
