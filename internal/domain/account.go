package domain

import "time"

type AccountRole string

const (
	RoleMember AccountRole = "member"
	RoleAdmin  AccountRole = "admin"
)

type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusApproved  AccountStatus = "approved"
	StatusRejected  AccountStatus = "rejected"
	StatusSuspended AccountStatus = "suspended"
)

type Account struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email" validate:"required,email"`
	PasswordHash string        `json:"-"`
	Name         string        `json:"name"`
	Role         AccountRole   `json:"role"`
	Status       AccountStatus `json:"status"`
	Phone        string        `json:"phone,omitempty"`
	Country      string        `json:"country,omitempty"`
	City         string        `json:"city,omitempty"`
	Gender       string        `json:"gender,omitempty"`
	BirthDate    *time.Time    `json:"birth_date,omitempty"`
	PhotoURL     string        `json:"photo_url,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Version      int64         `json:"version"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Sanitized returns a copy safe to return to clients.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}
