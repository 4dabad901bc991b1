package domain

import "time"

// SiteSetting is a single key/value pair of site configuration,
// managed by admins and readable by the public marketing pages.
type SiteSetting struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key" validate:"required"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
