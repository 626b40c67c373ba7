package model

import "time"

// Role gates which views and actions a user may access.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// User is an account on the job board.
// PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the optional, role-specific details of a user.
// Applicants use the bio/skills/resume fields, employers the company fields.
type Profile struct {
	Bio            string   `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Resume         string   `json:"resume,omitempty"`
	ResumeFilename string   `json:"resume_filename,omitempty"`

	Phone       string   `json:"phone,omitempty"`
	CompanyName string   `json:"company_name,omitempty"`
	Website     string   `json:"website,omitempty"`
	Location    string   `json:"location,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	CompanySize string   `json:"company_size,omitempty"`
	Description string   `json:"description,omitempty"`
	FoundedYear int      `json:"founded_year,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Culture     string   `json:"culture,omitempty"`
}

// UserSummary is the applicant view embedded in applications.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
