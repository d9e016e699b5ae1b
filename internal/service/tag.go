package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/repo"
)

// TagService implements the read-side tag operations behind the tag listing
// endpoints. Tag creation has no direct API — tags come into existence only
// through reconciliation when an expense is saved.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// ListPaged returns one page of the owner's tags whose name starts with
// prefix, with the total match count. The prefix is lowercased because tag
// names are stored lowercase. Always returns a non-nil slice.
func (s *TagService) ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	tags, total, err := s.tags.ListPaged(ctx, ownerID, prefix, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TagService.ListPaged: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, total, nil
}

// ListByExpense returns all tags linked to an expense, ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TagService) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error) {
	tags, err := s.tags.ListByExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.ListByExpense: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}
