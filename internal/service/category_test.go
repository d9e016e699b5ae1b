package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/service"
)

// ---- Create ----------------------------------------------------------------

func TestCategoryService_Create_OK(t *testing.T) {
	budget := decimal.RequireFromString("300.00")
	svc := service.NewCategoryService(&mockCategoryRepo{
		create: func(_ context.Context, c domain.Category) (domain.Category, error) {
			c.ID = uuid.New()
			return c, nil
		},
	})

	got, err := svc.Create(context.Background(), domain.Category{
		OwnerID:       uuid.New(),
		Name:          "Food",
		MonthlyBudget: &budget,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Food", got.Name)
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{})

	_, err := svc.Create(context.Background(), domain.Category{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryService_Create_NegativeBudget(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{})

	budget := decimal.RequireFromString("-1.00")
	_, err := svc.Create(context.Background(), domain.Category{Name: "Food", MonthlyBudget: &budget})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		create: func(context.Context, domain.Category) (domain.Category, error) {
			return domain.Category{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), domain.Category{Name: "Food"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- Update ----------------------------------------------------------------

func TestCategoryService_Update_OK(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		update: func(_ context.Context, c domain.Category) (domain.Category, error) {
			return c, nil
		},
	})

	got, err := svc.Update(context.Background(), domain.Category{ID: uuid.New(), Name: "Dining"})

	require.NoError(t, err)
	assert.Equal(t, "Dining", got.Name)
}

func TestCategoryService_Update_ValidatesBeforeRepo(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		update: func(context.Context, domain.Category) (domain.Category, error) {
			t.Fatal("repo must not be hit with invalid input")
			return domain.Category{}, nil
		},
	})

	_, err := svc.Update(context.Background(), domain.Category{Name: ""})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- List / Delete ---------------------------------------------------------

func TestCategoryService_List_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		listByOwner: func(context.Context, uuid.UUID) ([]domain.Category, error) {
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc := service.NewCategoryService(&mockCategoryRepo{
		delete: func(context.Context, uuid.UUID, uuid.UUID) error {
			return domain.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
