package domain

import "time"

type TeamRole string

const (
	TeamRoleFounder     TeamRole = "founder"
	TeamRoleAdmin       TeamRole = "admin"
	TeamRoleCoordinator TeamRole = "coordinator"
	TeamRoleMember      TeamRole = "member"
	TeamRoleIntern      TeamRole = "intern"
)

func ValidTeamRole(r TeamRole) bool {
	switch r {
	case TeamRoleFounder, TeamRoleAdmin, TeamRoleCoordinator, TeamRoleMember, TeamRoleIntern:
		return true
	}
	return false
}

// TeamMember is admin-curated presentation data for the public team
// page. It has no relation to Account.
type TeamMember struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Role         string    `json:"role"`
	TeamRole     TeamRole  `json:"team_role"`
	Bio          string    `json:"bio,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Email        string    `json:"email,omitempty"`
	LinkedinURL  string    `json:"linkedin_url,omitempty"`
	GithubURL    string    `json:"github_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
