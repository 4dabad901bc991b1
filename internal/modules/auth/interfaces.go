package auth

import (
	"context"

	"researchhub/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type RegistrationRepository interface {
	CreateWithAccount(ctx context.Context, a *domain.Account, app *domain.RegistrationApplication) error
	GetByAccountID(ctx context.Context, accountID int64) (*domain.RegistrationApplication, error)
}
