package domain

import "time"

// RegistrationApplication is the questionnaire submitted at signup,
// 1:1 with the owning account and deleted only together with it.
type RegistrationApplication struct {
	ID                    int64     `json:"id"`
	AccountID             int64     `json:"account_id"`
	Motivation            string    `json:"motivation"`
	FieldCategory         string    `json:"field_category"`
	HasExperience         bool      `json:"has_experience"`
	ExperienceDescription string    `json:"experience_description,omitempty"`
	TeamworkFeelings      string    `json:"teamwork_feelings,omitempty"`
	FutureGoals           string    `json:"future_goals,omitempty"`
	Skills                []string  `json:"skills"`
	OtherSkills           string    `json:"other_skills,omitempty"`
	Hobbies               string    `json:"hobbies,omitempty"`
	AvailabilityDays      int       `json:"availability_days"`
	AvailabilityHours     int       `json:"availability_hours"`
	LinkedinURL           string    `json:"linkedin_url,omitempty"`
	GithubURL             string    `json:"github_url,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}
