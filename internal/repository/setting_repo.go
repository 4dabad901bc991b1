package repository

import (
	"context"
	"time"

	"researchhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

type siteSettingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Key       string    `gorm:"column:key;uniqueIndex"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (siteSettingModel) TableName() string { return "site_settings" }

func (r *SettingRepository) GetAll(ctx context.Context) ([]domain.SiteSetting, error) {
	var models []siteSettingModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	settings := make([]domain.SiteSetting, 0, len(models))
	for _, m := range models {
		settings = append(settings, domain.SiteSetting{
			ID:        m.ID,
			Key:       m.Key,
			Value:     m.Value,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return settings, nil
}

// Upsert writes a setting by key, inserting or updating in one
// statement.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	m := siteSettingModel{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&m).Error
}
