package moderation

import (
	"context"

	"researchhub/internal/domain"
	"researchhub/internal/repository"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateStatus(ctx context.Context, a *domain.Account, newStatus domain.AccountStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.AccountStatus]int64, error)
}

type RegistrationRepository interface {
	ListWithAccounts(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]repository.RegistrationRecord, int64, error)
}

type ContentRepository interface {
	CountByKind(ctx context.Context, kind domain.ContentKind) (total, published int64, err error)
}
