package repository

import (
	"context"
	"strings"
	"time"

	"researchhub/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash"`
	Name         string     `gorm:"column:name"`
	Role         string     `gorm:"column:role"`
	Status       string     `gorm:"column:status"`
	Phone        *string    `gorm:"column:phone"`
	Country      *string    `gorm:"column:country"`
	City         *string    `gorm:"column:city"`
	Gender       *string    `gorm:"column:gender"`
	BirthDate    *time.Time `gorm:"column:birth_date"`
	PhotoURL     *string    `gorm:"column:photo_url"`
	Bio          *string    `gorm:"column:bio"`
	Version      int64      `gorm:"column:version"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainAccount(m accountModel) *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.AccountRole(m.Role),
		Status:       domain.AccountStatus(m.Status),
		Phone:        strOrEmpty(m.Phone),
		Country:      strOrEmpty(m.Country),
		City:         strOrEmpty(m.City),
		Gender:       strOrEmpty(m.Gender),
		BirthDate:    m.BirthDate,
		PhotoURL:     strOrEmpty(m.PhotoURL),
		Bio:          strOrEmpty(m.Bio),
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAccountModel(a *domain.Account) accountModel {
	return accountModel{
		ID:           a.ID,
		Email:        strings.TrimSpace(strings.ToLower(a.Email)),
		PasswordHash: a.PasswordHash,
		Name:         a.Name,
		Role:         string(a.Role),
		Status:       string(a.Status),
		Phone:        strOrNil(a.Phone),
		Country:      strOrNil(a.Country),
		City:         strOrNil(a.City),
		Gender:       strOrNil(a.Gender),
		BirthDate:    a.BirthDate,
		PhotoURL:     strOrNil(a.PhotoURL),
		Bio:          strOrNil(a.Bio),
		Version:      a.Version,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r *AccountRepository) DB() *gorm.DB { return r.db }

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAccount(m)
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

// UpdateStatus persists a moderation transition as a single atomic
// write guarded by the version the caller read. Zero rows affected
// means another moderator got there first.
func (r *AccountRepository) UpdateStatus(ctx context.Context, a *domain.Account, newStatus domain.AccountStatus) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"status":     string(newStatus),
			"version":    a.Version + 1,
			"updated_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	a.Status = newStatus
	a.Version++
	a.UpdatedAt = now
	return nil
}

// UpdateProfile writes the mutable profile fields, version-guarded.
func (r *AccountRepository) UpdateProfile(ctx context.Context, a *domain.Account) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"name":       a.Name,
			"phone":      strOrNil(a.Phone),
			"country":    strOrNil(a.Country),
			"city":       strOrNil(a.City),
			"gender":     strOrNil(a.Gender),
			"birth_date": a.BirthDate,
			"photo_url":  strOrNil(a.PhotoURL),
			"bio":        strOrNil(a.Bio),
			"version":    a.Version + 1,
			"updated_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	a.Version++
	a.UpdatedAt = now
	return nil
}

type AccountFilter struct {
	Status domain.AccountStatus
	Role   domain.AccountRole
}

// List returns accounts newest first, with a total count for
// pagination. Ordering by created_at keeps pages stable while admins
// paginate.
func (r *AccountRepository) List(ctx context.Context, f AccountFilter, limit, offset int) ([]domain.Account, int64, error) {
	q := r.db.WithContext(ctx).Model(&accountModel{})

	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Role != "" {
		q = q.Where("role = ?", string(f.Role))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []accountModel
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]domain.Account, 0, len(models))
	for _, m := range models {
		accounts = append(accounts, *toDomainAccount(m))
	}
	return accounts, total, nil
}

// Delete removes the account and its registration application in one
// transaction. The application never outlives the account.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&registrationModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&accountModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByStatus returns account totals per status for the admin stats
// endpoint.
func (r *AccountRepository) CountByStatus(ctx context.Context) (map[domain.AccountStatus]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[domain.AccountStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.AccountStatus(r.Status)] = r.N
	}
	return out, nil
}
