package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"researchhub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(accountID int64) (string, error)
}

type Service struct {
	accounts      AccountRepository
	registrations RegistrationRepository
	jwt           jwtService
}

func NewService(accounts AccountRepository, registrations RegistrationRepository, jwt jwtService) *Service {
	return &Service{
		accounts:      accounts,
		registrations: registrations,
		jwt:           jwt,
	}
}

type LoginResult struct {
	Account      *domain.Account
	Capabilities domain.CapabilitySet
	AccessToken  string
}

// Register creates a pending account plus its questionnaire in one
// transaction. Moderation decides everything after this point.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Account, *domain.RegistrationApplication, error) {
	if req.HasExperience && strings.TrimSpace(req.ExperienceDescription) == "" {
		return nil, nil, fmt.Errorf("%w: experience_description is required when has_experience is set", ErrValidation)
	}
	if req.AvailabilityDays < 0 || req.AvailabilityDays > 7 {
		return nil, nil, fmt.Errorf("%w: availability_days must be between 0 and 7", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	account := &domain.Account{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
		Role:         domain.RoleMember,
		Status:       domain.StatusPending,
	}
	application := &domain.RegistrationApplication{
		Motivation:            req.Motivation,
		FieldCategory:         req.FieldCategory,
		HasExperience:         req.HasExperience,
		ExperienceDescription: req.ExperienceDescription,
		TeamworkFeelings:      req.TeamworkFeelings,
		FutureGoals:           req.FutureGoals,
		Skills:                req.Skills,
		OtherSkills:           req.OtherSkills,
		Hobbies:               req.Hobbies,
		AvailabilityDays:      req.AvailabilityDays,
		AvailabilityHours:     req.AvailabilityHours,
		LinkedinURL:           req.LinkedinURL,
		GithubURL:             req.GithubURL,
	}

	if err := s.registrations.CreateWithAccount(ctx, account, application); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrEmailAlreadyExists
		}
		return nil, nil, err
	}

	return account, application, nil
}

// Login verifies credentials. Any status may log in; the capability
// set tells the client whether to show the pending/rejected notice
// instead of the member area.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Account:      account,
		Capabilities: domain.CapabilitiesFor(account),
		AccessToken:  token,
	}, nil
}

// Me returns the fresh account projection, its capability set and the
// questionnaire, for the profile/status screens.
func (s *Service) Me(ctx context.Context, accountID int64) (*domain.Account, domain.CapabilitySet, *domain.RegistrationApplication, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, nil, err
	}

	application, err := s.registrations.GetByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}

	return account, domain.CapabilitiesFor(account), application, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// SQLite wording, for local dev and tests.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
