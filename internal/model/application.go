package model

import "time"

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusShortlisted, StatusRejected, StatusHired}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application links an applicant to a job.
// Job and Applicant are populated on reads only.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	ApplicantID    string            `json:"applicant_id"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"cover_letter"`
	Notes          string            `json:"notes"`
	Resume         string            `json:"resume,omitempty"`
	ResumeFilename string            `json:"resume_filename,omitempty"`
	Job            *JobSummary       `json:"job,omitempty"`
	Applicant      *UserSummary      `json:"applicant,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
