package profile

import (
	"context"
	"errors"
	"fmt"

	"researchhub/internal/domain"
	"researchhub/internal/repository"

	"gorm.io/gorm"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateProfile(ctx context.Context, a *domain.Account) error
}

type ContentRepository interface {
	List(ctx context.Context, kind domain.ContentKind, f repository.ContentFilter) ([]domain.ContentItem, error)
}

type Service struct {
	accounts AccountRepository
	content  ContentRepository
}

func NewService(accounts AccountRepository, content ContentRepository) *Service {
	return &Service{accounts: accounts, content: content}
}

// Get returns the actor's own profile. Any signed-in account may see
// its own status; the full profile dashboard needs approval.
func (s *Service) Get(ctx context.Context, actor *domain.Account) (*domain.Account, domain.CapabilitySet, error) {
	account, err := s.accounts.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return account, domain.CapabilitiesFor(account), nil
}

// Update patches the actor's own profile fields, version-guarded.
func (s *Service) Update(ctx context.Context, actor *domain.Account, req UpdateRequest) (*domain.Account, error) {
	if !domain.CapabilitiesFor(actor).Has(domain.CapEditOwnProfile) {
		return nil, ErrForbidden
	}

	account, err := s.accounts.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Version != account.Version {
		return nil, fmt.Errorf("%w: profile version %d is stale, current is %d", ErrConflict, req.Version, account.Version)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Country != nil {
		account.Country = *req.Country
	}
	if req.City != nil {
		account.City = *req.City
	}
	if req.Gender != nil {
		account.Gender = *req.Gender
	}
	if req.BirthDate != nil {
		account.BirthDate = req.BirthDate
	}
	if req.PhotoURL != nil {
		account.PhotoURL = *req.PhotoURL
	}
	if req.Bio != nil {
		account.Bio = *req.Bio
	}

	if err := s.accounts.UpdateProfile(ctx, account); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: profile was modified concurrently", ErrConflict)
		}
		return nil, err
	}
	return account, nil
}

// Submissions lists the actor's own content of both kinds, drafts
// included.
func (s *Service) Submissions(ctx context.Context, actor *domain.Account) (map[domain.ContentKind][]domain.ContentItem, error) {
	if !domain.CapabilitiesFor(actor).Has(domain.CapViewOwnSubmissions) {
		return nil, ErrForbidden
	}

	authorID := actor.ID
	out := make(map[domain.ContentKind][]domain.ContentItem, 2)
	for _, kind := range []domain.ContentKind{domain.KindResearch, domain.KindProject} {
		items, err := s.content.List(ctx, kind, repository.ContentFilter{AuthorID: &authorID})
		if err != nil {
			return nil, err
		}
		out[kind] = items
	}
	return out, nil
}
