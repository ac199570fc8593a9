package models

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// JoinRequestBody carries the shared base plus role-specific optional
// fields. Which optional fields are honored depends on the role tag.
type JoinRequestBody struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Skills string `json:"skills" binding:"required"`
	Role   string `json:"role,omitempty"`

	// Labeler fields
	Experience   string   `json:"experience,omitempty"`
	Availability string   `json:"availability,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`

	// Provider fields
	Company            string   `json:"company,omitempty"`
	DataTypes          []string `json:"data_types,omitempty"`
	ProjectDescription string   `json:"project_description,omitempty"`
}
