package team

import (
	"context"
	"errors"
	"fmt"

	"researchhub/internal/domain"

	"gorm.io/gorm"
)

type TeamRepository interface {
	Create(ctx context.Context, t *domain.TeamMember) error
	GetByID(ctx context.Context, id int64) (*domain.TeamMember, error)
	Update(ctx context.Context, t *domain.TeamMember) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.TeamMember, error)
}

type Service struct {
	team TeamRepository
}

func NewService(team TeamRepository) *Service {
	return &Service{team: team}
}

// List returns members in display order for the public team page.
func (s *Service) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.team.List(ctx)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.TeamMember, error) {
	if !domain.ValidTeamRole(req.TeamRole) {
		return nil, fmt.Errorf("%w: unknown team role %q", ErrValidation, req.TeamRole)
	}

	member := &domain.TeamMember{
		Name:         req.Name,
		Role:         req.Role,
		TeamRole:     req.TeamRole,
		Bio:          req.Bio,
		ImageURL:     req.ImageURL,
		Email:        req.Email,
		LinkedinURL:  req.LinkedinURL,
		GithubURL:    req.GithubURL,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.team.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.TeamMember, error) {
	if !domain.ValidTeamRole(req.TeamRole) {
		return nil, fmt.Errorf("%w: unknown team role %q", ErrValidation, req.TeamRole)
	}

	member, err := s.team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	member.Name = req.Name
	member.Role = req.Role
	member.TeamRole = req.TeamRole
	member.Bio = req.Bio
	member.ImageURL = req.ImageURL
	member.Email = req.Email
	member.LinkedinURL = req.LinkedinURL
	member.GithubURL = req.GithubURL
	member.DisplayOrder = req.DisplayOrder

	if err := s.team.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.team.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
