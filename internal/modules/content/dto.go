package content

import "researchhub/internal/domain"

type SubmitRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Excerpt     string                `json:"excerpt"`
	Body        string                `json:"body"`
	Category    string                `json:"category"`
	Images      []domain.ContentImage `json:"images"`
	AsDraft     bool                  `json:"as_draft"`
}

// EditRequest is a sparse patch: nil fields stay untouched. Version is
// the version the client read; a mismatch means someone else edited in
// between.
type EditRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Excerpt     *string                `json:"excerpt"`
	Body        *string                `json:"body"`
	Images      *[]domain.ContentImage `json:"images"`
	Category    *string                `json:"category"`
	Published   *bool                  `json:"published"`
	Featured    *bool                  `json:"featured"`
	Version     int64                  `json:"version" binding:"required"`
}

// publicationFields reports whether the patch touches fields only
// admins may change.
func (r EditRequest) publicationFields() bool {
	return r.Published != nil || r.Featured != nil || r.Category != nil
}

type ListQuery struct {
	AuthorID  *int64
	Published *bool
	Featured  *bool
	Category  string
	Search    string
}
