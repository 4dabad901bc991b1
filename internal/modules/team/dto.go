package team

import "researchhub/internal/domain"

type UpsertRequest struct {
	Name         string          `json:"name" binding:"required"`
	Role         string          `json:"role"`
	TeamRole     domain.TeamRole `json:"team_role" binding:"required"`
	Bio          string          `json:"bio"`
	ImageURL     string          `json:"image_url"`
	Email        string          `json:"email"`
	LinkedinURL  string          `json:"linkedin_url"`
	GithubURL    string          `json:"github_url"`
	DisplayOrder int             `json:"display_order"`
}
