package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/service"
)

func TestTagService_ListPaged_PrefixNormalized(t *testing.T) {
	var capturedPrefix string
	svc := service.NewTagService(&mockTagRepo{
		listPaged: func(_ context.Context, _ uuid.UUID, prefix string, _ domain.PaginationParams) ([]domain.Tag, int64, error) {
			capturedPrefix = prefix
			return []domain.Tag{}, 0, nil
		},
	})

	_, _, err := svc.ListPaged(context.Background(), uuid.New(), "  Gro ", domain.NewPaginationParams(1, 25))

	require.NoError(t, err)
	assert.Equal(t, "gro", capturedPrefix, "prefix should be trimmed and lowercased")
}

func TestTagService_ListPaged_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		listPaged: func(context.Context, uuid.UUID, string, domain.PaginationParams) ([]domain.Tag, int64, error) {
			return nil, 0, nil
		},
	})

	got, total, err := svc.ListPaged(context.Background(), uuid.New(), "", domain.NewPaginationParams(1, 25))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestTagService_ListByExpense_OK(t *testing.T) {
	expenseID := uuid.New()
	svc := service.NewTagService(&mockTagRepo{
		listByExpense: func(_ context.Context, gotID uuid.UUID) ([]domain.Tag, error) {
			assert.Equal(t, expenseID, gotID)
			return []domain.Tag{{ID: uuid.New(), Name: "food"}}, nil
		},
	})

	got, err := svc.ListByExpense(context.Background(), expenseID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "food", got[0].Name)
}

func TestTagService_ListByExpense_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		listByExpense: func(context.Context, uuid.UUID) ([]domain.Tag, error) {
			return nil, nil
		},
	})

	got, err := svc.ListByExpense(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
