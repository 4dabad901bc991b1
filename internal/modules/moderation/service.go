package moderation

import (
	"context"
	"errors"
	"fmt"

	"researchhub/internal/domain"
	"researchhub/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	accounts      AccountRepository
	registrations RegistrationRepository
	content       ContentRepository
	policy        domain.TransitionPolicy
}

func NewService(
	accounts AccountRepository,
	registrations RegistrationRepository,
	content ContentRepository,
	policy domain.TransitionPolicy,
) *Service {
	return &Service{
		accounts:      accounts,
		registrations: registrations,
		content:       content,
		policy:        policy,
	}
}

func (s *Service) requireModerator(actor *domain.Account) error {
	if !domain.CapabilitiesFor(actor).Has(domain.CapModerateAccounts) {
		return ErrForbidden
	}
	return nil
}

// ApplyModeration runs one approve/reject/suspend transition on the
// target account. Nothing is written when the transition is invalid;
// the stored status stays exactly as it was.
func (s *Service) ApplyModeration(ctx context.Context, actor *domain.Account, targetID int64, action domain.ModerationAction) (*domain.Account, error) {
	if err := s.requireModerator(actor); err != nil {
		return nil, err
	}
	if !domain.ValidAction(action) {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	target, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newStatus, err := s.policy.Transition(target.Status, action)
	if err != nil {
		// Surfaced as a conflict naming the current status and the
		// rejected action; a stale-UI double click shows up as a
		// visible error instead of a silent no-op.
		return nil, err
	}

	if err := s.accounts.UpdateStatus(ctx, target, newStatus); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: account was modified by another moderator", ErrConflict)
		}
		return nil, err
	}

	sanitized := target.Sanitized()
	return &sanitized, nil
}

// ListRegistrations pages through registration records newest first,
// optionally filtered by status.
func (s *Service) ListRegistrations(ctx context.Context, actor *domain.Account, page, limit int, status domain.AccountStatus) ([]RegistrationEntry, *Pagination, error) {
	if err := s.requireModerator(actor); err != nil {
		return nil, nil, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	records, total, err := s.registrations.ListWithAccounts(ctx, status, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]RegistrationEntry, 0, len(records))
	for _, rec := range records {
		entry := RegistrationEntry{Account: rec.Account.Sanitized()}
		if rec.Application.AccountID != 0 {
			app := rec.Application
			entry.Application = &app
		}
		entries = append(entries, entry)
	}

	pagination := &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return entries, pagination, nil
}

// DeleteRegistration removes an account together with its
// questionnaire. Irreversible.
func (s *Service) DeleteRegistration(ctx context.Context, actor *domain.Account, accountID int64) error {
	if err := s.requireModerator(actor); err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ExportRegistrations returns the full registration set for the CSV
// export, unpaginated.
func (s *Service) ExportRegistrations(ctx context.Context, actor *domain.Account, status domain.AccountStatus) ([]repository.RegistrationRecord, error) {
	if err := s.requireModerator(actor); err != nil {
		return nil, err
	}

	records, _, err := s.registrations.ListWithAccounts(ctx, status, 0, 0)
	return records, err
}

// GetStatistics aggregates the counts every admin screen needs, so the
// dashboard reads one endpoint instead of re-deriving stats per page.
func (s *Service) GetStatistics(ctx context.Context, actor *domain.Account) (*StatisticsResponse, error) {
	if err := s.requireModerator(actor); err != nil {
		return nil, err
	}

	byStatus, err := s.accounts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StatisticsResponse{AccountsByStatus: make(map[string]int64, len(byStatus))}
	for status, n := range byStatus {
		stats.AccountsByStatus[string(status)] = n
		stats.TotalAccounts += n
	}

	stats.ResearchTotal, stats.ResearchPublished, err = s.content.CountByKind(ctx, domain.KindResearch)
	if err != nil {
		return nil, err
	}
	stats.ProjectsTotal, stats.ProjectsPublished, err = s.content.CountByKind(ctx, domain.KindProject)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
