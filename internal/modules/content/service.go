package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"researchhub/internal/domain"
	"researchhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	content ContentRepository
}

func NewService(content ContentRepository) *Service {
	return &Service{content: content}
}

// Submit creates a content item owned by the actor. asDraft keeps it
// unpublished; published items are live immediately, there is no
// review queue for content.
func (s *Service) Submit(ctx context.Context, actor *domain.Account, kind domain.ContentKind, req SubmitRequest) (*domain.ContentItem, error) {
	if !domain.CapabilitiesFor(actor).Has(domain.CapSubmitContent) {
		return nil, ErrForbidden
	}
	if !domain.ValidContentKind(kind) {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}

	authorID := actor.ID
	item := &domain.ContentItem{
		PublicID:    uuid.NewString(),
		Kind:        kind,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		Category:    req.Category,
		AuthorID:    &authorID,
		Published:   !req.AsDraft,
		Images:      req.Images,
	}

	if item.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if err := s.content.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Edit patches an item. Admins may touch anything; members only their
// own items, and never the publication fields.
func (s *Service) Edit(ctx context.Context, actor *domain.Account, kind domain.ContentKind, id int64, req EditRequest) (*domain.ContentItem, error) {
	caps := domain.CapabilitiesFor(actor)
	isAdmin := caps.Has(domain.CapModerateContent)

	if !isAdmin && !caps.Has(domain.CapSubmitContent) {
		return nil, ErrForbidden
	}

	item, err := s.content.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !isAdmin {
		if item.AuthorID == nil || *item.AuthorID != actor.ID {
			return nil, ErrForbidden
		}
		if req.publicationFields() {
			return nil, fmt.Errorf("%w: publishing and featuring are admin actions", ErrForbidden)
		}
	}

	if req.Version != item.Version {
		return nil, fmt.Errorf("%w: item version %d is stale, current is %d", ErrConflict, req.Version, item.Version)
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Excerpt != nil {
		item.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		item.Body = *req.Body
	}
	if req.Images != nil {
		item.Images = *req.Images
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Published != nil {
		item.Published = *req.Published
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}

	if item.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if err := s.content.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: item was modified concurrently", ErrConflict)
		}
		return nil, err
	}
	return item, nil
}

// Delete removes an item for good. Admin only, no soft delete.
func (s *Service) Delete(ctx context.Context, actor *domain.Account, kind domain.ContentKind, id int64) error {
	if !domain.CapabilitiesFor(actor).Has(domain.CapModerateContent) {
		return ErrForbidden
	}

	if err := s.content.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListPublished is the public listing: drafts never appear, featured
// or not.
func (s *Service) ListPublished(ctx context.Context, kind domain.ContentKind, q ListQuery) ([]domain.ContentItem, error) {
	if !domain.ValidContentKind(kind) {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}

	published := true
	items, err := s.content.List(ctx, kind, repository.ContentFilter{
		Published: &published,
		Featured:  q.Featured,
		Category:  q.Category,
	})
	if err != nil {
		return nil, err
	}
	return filterSearch(items, q.Search), nil
}

// GetPublished returns one live item for the public detail pages.
func (s *Service) GetPublished(ctx context.Context, kind domain.ContentKind, id int64) (*domain.ContentItem, error) {
	item, err := s.content.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !item.Published {
		return nil, ErrNotFound
	}
	return item, nil
}

// ListAll serves the admin views (drafts included) and a member's own
// submissions. Members may only scope the query to themselves.
func (s *Service) ListAll(ctx context.Context, actor *domain.Account, kind domain.ContentKind, q ListQuery) ([]domain.ContentItem, error) {
	if !domain.ValidContentKind(kind) {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}

	caps := domain.CapabilitiesFor(actor)
	if !caps.Has(domain.CapViewAllSubmissions) {
		if !caps.Has(domain.CapViewOwnSubmissions) {
			return nil, ErrForbidden
		}
		if q.AuthorID == nil || *q.AuthorID != actor.ID {
			return nil, ErrForbidden
		}
	}

	items, err := s.content.List(ctx, kind, repository.ContentFilter{
		AuthorID:  q.AuthorID,
		Published: q.Published,
		Featured:  q.Featured,
		Category:  q.Category,
	})
	if err != nil {
		return nil, err
	}
	return filterSearch(items, q.Search), nil
}

// filterSearch applies the case-insensitive substring match over the
// fetched set, the way the admin screens search client-side.
func filterSearch(items []domain.ContentItem, search string) []domain.ContentItem {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}

	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), search) ||
			strings.Contains(strings.ToLower(item.Description), search) {
			out = append(out, item)
		}
	}
	return out
}
