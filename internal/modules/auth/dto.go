package auth

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`

	Motivation            string   `json:"motivation" binding:"required"`
	FieldCategory         string   `json:"field_category" binding:"required"`
	HasExperience         bool     `json:"has_experience"`
	ExperienceDescription string   `json:"experience_description"`
	TeamworkFeelings      string   `json:"teamwork_feelings"`
	FutureGoals           string   `json:"future_goals"`
	Skills                []string `json:"skills"`
	OtherSkills           string   `json:"other_skills"`
	Hobbies               string   `json:"hobbies"`
	AvailabilityDays      int      `json:"availability_days"`
	AvailabilityHours     int      `json:"availability_hours"`
	LinkedinURL           string   `json:"linkedin_url"`
	GithubURL             string   `json:"github_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
