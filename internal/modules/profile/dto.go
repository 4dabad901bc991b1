package profile

import "time"

// UpdateRequest is a sparse patch of the owner-mutable profile fields.
// Version must match the version the client read.
type UpdateRequest struct {
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Country   *string    `json:"country"`
	City      *string    `json:"city"`
	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	PhotoURL  *string    `json:"photo_url"`
	Bio       *string    `json:"bio"`
	Version   int64      `json:"version" binding:"required"`
}
