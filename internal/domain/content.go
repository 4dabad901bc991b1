package domain

import "time"

type ContentKind string

const (
	KindResearch ContentKind = "research"
	KindProject  ContentKind = "project"
)

func ValidContentKind(k ContentKind) bool {
	return k == KindResearch || k == KindProject
}

type ContentImage struct {
	URL          string `json:"url"`
	AltText      string `json:"alt_text,omitempty"`
	Caption      string `json:"caption,omitempty"`
	IsFeatured   bool   `json:"is_featured"`
	DisplayOrder int    `json:"display_order"`
}

// ContentItem is a research or project record. Featured only has a
// public effect while the item is published; a featured draft is
// persisted but never listed publicly.
type ContentItem struct {
	ID          int64          `json:"id"`
	PublicID    string         `json:"public_id"`
	Kind        ContentKind    `json:"kind"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Body        string         `json:"body,omitempty"`
	Category    string         `json:"category,omitempty"`
	AuthorID    *int64         `json:"author_id,omitempty"`
	Published   bool           `json:"published"`
	Featured    bool           `json:"featured"`
	Images      []ContentImage `json:"images,omitempty"`
	Version     int64          `json:"version"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
