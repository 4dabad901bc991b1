package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"researchhub/internal/domain"

	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

type registrationModel struct {
	ID                    int64     `gorm:"column:id;primaryKey"`
	AccountID             int64     `gorm:"column:account_id;uniqueIndex"`
	Motivation            string    `gorm:"column:motivation"`
	FieldCategory         string    `gorm:"column:field_category"`
	HasExperience         bool      `gorm:"column:has_experience"`
	ExperienceDescription *string   `gorm:"column:experience_description"`
	TeamworkFeelings      *string   `gorm:"column:teamwork_feelings"`
	FutureGoals           *string   `gorm:"column:future_goals"`
	Skills                string    `gorm:"column:skills"` // JSON array
	OtherSkills           *string   `gorm:"column:other_skills"`
	Hobbies               *string   `gorm:"column:hobbies"`
	AvailabilityDays      int       `gorm:"column:availability_days"`
	AvailabilityHours     int       `gorm:"column:availability_hours"`
	LinkedinURL           *string   `gorm:"column:linkedin_url"`
	GithubURL             *string   `gorm:"column:github_url"`
	CreatedAt             time.Time `gorm:"column:created_at"`
}

func (registrationModel) TableName() string { return "registration_applications" }

func toDomainRegistration(m registrationModel) *domain.RegistrationApplication {
	var skills []string
	if m.Skills != "" {
		_ = json.Unmarshal([]byte(m.Skills), &skills)
	}

	return &domain.RegistrationApplication{
		ID:                    m.ID,
		AccountID:             m.AccountID,
		Motivation:            m.Motivation,
		FieldCategory:         m.FieldCategory,
		HasExperience:         m.HasExperience,
		ExperienceDescription: strOrEmpty(m.ExperienceDescription),
		TeamworkFeelings:      strOrEmpty(m.TeamworkFeelings),
		FutureGoals:           strOrEmpty(m.FutureGoals),
		Skills:                skills,
		OtherSkills:           strOrEmpty(m.OtherSkills),
		Hobbies:               strOrEmpty(m.Hobbies),
		AvailabilityDays:      m.AvailabilityDays,
		AvailabilityHours:     m.AvailabilityHours,
		LinkedinURL:           strOrEmpty(m.LinkedinURL),
		GithubURL:             strOrEmpty(m.GithubURL),
		CreatedAt:             m.CreatedAt,
	}
}

func toRegistrationModel(a *domain.RegistrationApplication) registrationModel {
	skills := "[]"
	if len(a.Skills) > 0 {
		if b, err := json.Marshal(a.Skills); err == nil {
			skills = string(b)
		}
	}

	return registrationModel{
		ID:                    a.ID,
		AccountID:             a.AccountID,
		Motivation:            a.Motivation,
		FieldCategory:         a.FieldCategory,
		HasExperience:         a.HasExperience,
		ExperienceDescription: strOrNil(a.ExperienceDescription),
		TeamworkFeelings:      strOrNil(a.TeamworkFeelings),
		FutureGoals:           strOrNil(a.FutureGoals),
		Skills:                skills,
		OtherSkills:           strOrNil(a.OtherSkills),
		Hobbies:               strOrNil(a.Hobbies),
		AvailabilityDays:      a.AvailabilityDays,
		AvailabilityHours:     a.AvailabilityHours,
		LinkedinURL:           strOrNil(a.LinkedinURL),
		GithubURL:             strOrNil(a.GithubURL),
		CreatedAt:             a.CreatedAt,
	}
}

func (r *RegistrationRepository) DB() *gorm.DB { return r.db }

// CreateWithAccount inserts the account and its application in one
// transaction so registration never leaves a half-created pair.
func (r *RegistrationRepository) CreateWithAccount(ctx context.Context, a *domain.Account, app *domain.RegistrationApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		am := toAccountModel(a)
		if err := tx.Create(&am).Error; err != nil {
			return err
		}
		*a = *toDomainAccount(am)

		app.AccountID = a.ID
		rm := toRegistrationModel(app)
		if err := tx.Create(&rm).Error; err != nil {
			return err
		}
		*app = *toDomainRegistration(rm)
		return nil
	})
}

func (r *RegistrationRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.RegistrationApplication, error) {
	var m registrationModel
	tx := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRegistration(m), nil
}

// RegistrationRecord pairs an account with its questionnaire for the
// admin review screens and the CSV export.
type RegistrationRecord struct {
	Account     domain.Account
	Application domain.RegistrationApplication
}

// ListWithAccounts returns registration records newest first. A zero
// limit disables pagination (used by the CSV export, which works over
// the full set).
func (r *RegistrationRepository) ListWithAccounts(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]RegistrationRecord, int64, error) {
	base := r.db.WithContext(ctx).Model(&accountModel{})
	if status != "" {
		base = base.Where("status = ?", string(status))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var accounts []accountModel
	if err := q.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	records := make([]RegistrationRecord, 0, len(accounts))
	for _, am := range accounts {
		rec := RegistrationRecord{Account: *toDomainAccount(am)}

		var rm registrationModel
		err := r.db.WithContext(ctx).Where("account_id = ?", am.ID).First(&rm).Error
		switch {
		case err == nil:
			rec.Application = *toDomainRegistration(rm)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Seeded admin accounts have no questionnaire.
		default:
			return nil, 0, err
		}

		records = append(records, rec)
	}
	return records, total, nil
}
