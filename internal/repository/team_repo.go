package repository

import (
	"context"
	"time"

	"researchhub/internal/domain"

	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamMemberModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	TeamRole     string    `gorm:"column:team_role"`
	Bio          *string   `gorm:"column:bio"`
	ImageURL     *string   `gorm:"column:image_url"`
	Email        *string   `gorm:"column:email"`
	LinkedinURL  *string   `gorm:"column:linkedin_url"`
	GithubURL    *string   `gorm:"column:github_url"`
	DisplayOrder int       `gorm:"column:display_order"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (teamMemberModel) TableName() string { return "team_members" }

func toDomainTeamMember(m teamMemberModel) *domain.TeamMember {
	return &domain.TeamMember{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		TeamRole:     domain.TeamRole(m.TeamRole),
		Bio:          strOrEmpty(m.Bio),
		ImageURL:     strOrEmpty(m.ImageURL),
		Email:        strOrEmpty(m.Email),
		LinkedinURL:  strOrEmpty(m.LinkedinURL),
		GithubURL:    strOrEmpty(m.GithubURL),
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTeamMemberModel(t *domain.TeamMember) teamMemberModel {
	return teamMemberModel{
		ID:           t.ID,
		Name:         t.Name,
		Role:         t.Role,
		TeamRole:     string(t.TeamRole),
		Bio:          strOrNil(t.Bio),
		ImageURL:     strOrNil(t.ImageURL),
		Email:        strOrNil(t.Email),
		LinkedinURL:  strOrNil(t.LinkedinURL),
		GithubURL:    strOrNil(t.GithubURL),
		DisplayOrder: t.DisplayOrder,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (r *TeamRepository) Create(ctx context.Context, t *domain.TeamMember) error {
	m := toTeamMemberModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTeamMember(m)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*domain.TeamMember, error) {
	var m teamMemberModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTeamMember(m), nil
}

func (r *TeamRepository) Update(ctx context.Context, t *domain.TeamMember) error {
	m := toTeamMemberModel(t)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTeamMember(m)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&teamMemberModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List orders by display_order so the public team page renders in the
// admin-chosen order.
func (r *TeamRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	var models []teamMemberModel
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(models))
	for _, m := range models {
		members = append(members, *toDomainTeamMember(m))
	}
	return members, nil
}
