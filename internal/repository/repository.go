// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and contain no business logic.
package repository

import (
	"context"
	"errors"

	"jobboard/internal/model"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// UserQuery filters the user listing. Search matches name or email.
type UserQuery struct {
	Search string
	Role   model.Role
	Page   PageQuery
}

// UserRepository defines data access for user accounts.
// Lookups of missing rows return sql.ErrNoRows.
type UserRepository interface {
	// Create inserts a user; a taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update persists name, profile and updated_at.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	List(ctx context.Context, q UserQuery) (*PageResult[model.User], error)
	// Delete removes a user; jobs and applications cascade.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// JobQuery filters the job listing. Empty Status and EmployerID mean any.
type JobQuery struct {
	Filter     model.JobFilter
	Status     model.JobStatus
	EmployerID string
	// VisibleTo widens Status: jobs posted by this user match in any status.
	VisibleTo string
	Page      PageQuery
}

// JobRepository defines data access for job listings.
type JobRepository interface {
	Create(ctx context.Context, j *model.Job) (*model.Job, error)
	FindByID(ctx context.Context, id string) (*model.Job, error)
	// Update persists every mutable field and updated_at.
	Update(ctx context.Context, j *model.Job) (*model.Job, error)
	// Delete removes a job; its applications cascade.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q JobQuery) (*PageResult[model.Job], error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// ApplicationQuery filters application listings. Empty fields mean any.
type ApplicationQuery struct {
	JobID       string
	ApplicantID string
	Status      model.ApplicationStatus
	Page        PageQuery
}

// ApplicationRepository defines data access for job applications.
// Reads populate the job and applicant summaries.
type ApplicationRepository interface {
	// Create inserts an application; a second application to the same job yields ErrDuplicate.
	Create(ctx context.Context, a *model.Application) (*model.Application, error)
	FindByID(ctx context.Context, id string) (*model.Application, error)
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	List(ctx context.Context, q ApplicationQuery) (*PageResult[model.Application], error)
	// UpdateStatus sets status and, when notes is non-nil, notes.
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, notes *string) (*model.Application, error)
	// FindByResume returns the applications referencing an uploaded resume.
	FindByResume(ctx context.Context, key string) ([]model.Application, error)
	// ResumeKeysByJob lists the stored resumes that deleting a job orphans.
	ResumeKeysByJob(ctx context.Context, jobID string) ([]string, error)
	// ResumeKeysByUser lists the stored resumes that deleting a user orphans.
	ResumeKeysByUser(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error)
}
