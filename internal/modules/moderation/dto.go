package moderation

import "researchhub/internal/domain"

type ModerateRequest struct {
	Action domain.ModerationAction `json:"action" binding:"required"`
}

type RegistrationEntry struct {
	Account     domain.Account                  `json:"account"`
	Application *domain.RegistrationApplication `json:"application,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type StatisticsResponse struct {
	AccountsByStatus  map[string]int64 `json:"accounts_by_status"`
	TotalAccounts     int64            `json:"total_accounts"`
	ResearchTotal     int64            `json:"research_total"`
	ResearchPublished int64            `json:"research_published"`
	ProjectsTotal     int64            `json:"projects_total"`
	ProjectsPublished int64            `json:"projects_published"`
}
