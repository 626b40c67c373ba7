package model

import "time"

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusClosed
}

// DefaultCurrency is used when a salary has no currency set.
const DefaultCurrency = "USD"

// Salary is an optional range; either bound may be absent.
type Salary struct {
	Min      *int64 `json:"min,omitempty"`
	Max      *int64 `json:"max,omitempty"`
	Currency string `json:"currency"`
}

// Job is a posted position.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	JobType          JobType   `json:"job_type"`
	Salary           Salary    `json:"salary"`
	Skills           []string  `json:"skills"`
	Requirements     []string  `json:"requirements"`
	Benefits         []string  `json:"benefits"`
	Status           JobStatus `json:"status"`
	EmployerID       string    `json:"employer_id"`
	ApplicationCount int       `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobSummary is the job view embedded in applications.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// JobFilter narrows a job listing. Zero values mean "no constraint".
type JobFilter struct {
	Search     string   `json:"search,omitempty"`
	Location   string   `json:"location,omitempty"`
	JobType    JobType  `json:"job_type,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	SalaryMin  *int64   `json:"salary_min,omitempty"`
	SalaryMax  *int64   `json:"salary_max,omitempty"`
	DatePosted int      `json:"date_posted,omitempty"`
	Company    string   `json:"company,omitempty"`
	Page       int      `json:"page,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}
