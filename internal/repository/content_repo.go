package repository

import (
	"context"
	"encoding/json"
	"time"

	"researchhub/internal/domain"

	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

type contentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	PublicID    string    `gorm:"column:public_id;uniqueIndex"`
	Kind        string    `gorm:"column:kind;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Excerpt     *string   `gorm:"column:excerpt"`
	Body        *string   `gorm:"column:body"`
	Category    *string   `gorm:"column:category"`
	AuthorID    *int64    `gorm:"column:author_id;index"`
	Published   bool      `gorm:"column:published"`
	Featured    bool      `gorm:"column:featured"`
	Images      string    `gorm:"column:images"` // JSON array, kept on the row so every update is one write
	Version     int64     `gorm:"column:version"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (contentModel) TableName() string { return "content_items" }

func toDomainContent(m contentModel) *domain.ContentItem {
	var images []domain.ContentImage
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &images)
	}

	return &domain.ContentItem{
		ID:          m.ID,
		PublicID:    m.PublicID,
		Kind:        domain.ContentKind(m.Kind),
		Title:       m.Title,
		Description: m.Description,
		Excerpt:     strOrEmpty(m.Excerpt),
		Body:        strOrEmpty(m.Body),
		Category:    strOrEmpty(m.Category),
		AuthorID:    m.AuthorID,
		Published:   m.Published,
		Featured:    m.Featured,
		Images:      images,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func marshalImages(images []domain.ContentImage) string {
	if len(images) == 0 {
		return "[]"
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func toContentModel(c *domain.ContentItem) contentModel {
	return contentModel{
		ID:          c.ID,
		PublicID:    c.PublicID,
		Kind:        string(c.Kind),
		Title:       c.Title,
		Description: c.Description,
		Excerpt:     strOrNil(c.Excerpt),
		Body:        strOrNil(c.Body),
		Category:    strOrNil(c.Category),
		AuthorID:    c.AuthorID,
		Published:   c.Published,
		Featured:    c.Featured,
		Images:      marshalImages(c.Images),
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *ContentRepository) DB() *gorm.DB { return r.db }

func (r *ContentRepository) Create(ctx context.Context, c *domain.ContentItem) error {
	m := toContentModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainContent(m)
	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, kind domain.ContentKind, id int64) (*domain.ContentItem, error) {
	var m contentModel
	tx := r.db.WithContext(ctx).Where("kind = ?", string(kind)).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainContent(m), nil
}

// Update rewrites the full item as a single version-guarded write.
func (r *ContentRepository) Update(ctx context.Context, c *domain.ContentItem) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&contentModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]any{
			"title":       c.Title,
			"description": c.Description,
			"excerpt":     strOrNil(c.Excerpt),
			"body":        strOrNil(c.Body),
			"category":    strOrNil(c.Category),
			"published":   c.Published,
			"featured":    c.Featured,
			"images":      marshalImages(c.Images),
			"version":     c.Version + 1,
			"updated_at":  now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	c.Version++
	c.UpdatedAt = now
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, kind domain.ContentKind, id int64) error {
	res := r.db.WithContext(ctx).Where("kind = ?", string(kind)).Delete(&contentModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ContentFilter struct {
	AuthorID  *int64
	Published *bool
	Featured  *bool
	Category  string
}

// List returns items of a kind newest first. Substring search happens
// in the service over the fetched set, matching how the admin views
// filter client-side.
func (r *ContentRepository) List(ctx context.Context, kind domain.ContentKind, f ContentFilter) ([]domain.ContentItem, error) {
	q := r.db.WithContext(ctx).Model(&contentModel{}).Where("kind = ?", string(kind))

	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var models []contentModel
	if err := q.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]domain.ContentItem, 0, len(models))
	for _, m := range models {
		items = append(items, *toDomainContent(m))
	}
	return items, nil
}

// CountByKind returns published/total counts per kind for admin stats.
func (r *ContentRepository) CountByKind(ctx context.Context, kind domain.ContentKind) (total, published int64, err error) {
	base := r.db.WithContext(ctx).Model(&contentModel{}).Where("kind = ?", string(kind))
	if err = base.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Where("published = ?", true).Count(&published).Error; err != nil {
		return 0, 0, err
	}
	return total, published, nil
}
