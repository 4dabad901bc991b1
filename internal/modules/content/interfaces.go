package content

import (
	"context"

	"researchhub/internal/domain"
	"researchhub/internal/repository"
)

type ContentRepository interface {
	Create(ctx context.Context, c *domain.ContentItem) error
	GetByID(ctx context.Context, kind domain.ContentKind, id int64) (*domain.ContentItem, error)
	Update(ctx context.Context, c *domain.ContentItem) error
	Delete(ctx context.Context, kind domain.ContentKind, id int64) error
	List(ctx context.Context, kind domain.ContentKind, f repository.ContentFilter) ([]domain.ContentItem, error)
}
