package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/logging"
	"jobboard/internal/metrics"
	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/storage"
)

// JobInput is a new job listing. JobType defaults to full-time, Status to active
// and the salary currency to USD.
type JobInput struct {
	Title        string          `json:"title" validate:"required,min=3,max=100"`
	Description  string          `json:"description" validate:"required,min=10,max=2000"`
	Company      string          `json:"company" validate:"required,min=2,max=100"`
	Location     string          `json:"location" validate:"required,max=100"`
	JobType      model.JobType   `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Salary       SalaryInput     `json:"salary"`
	Skills       []string        `json:"skills"`
	Requirements []string        `json:"requirements"`
	Benefits     []string        `json:"benefits"`
	Status       model.JobStatus `json:"status" validate:"omitempty,oneof=active closed"`
}

type SalaryInput struct {
	Min      *int64 `json:"min" validate:"omitempty,min=0"`
	Max      *int64 `json:"max" validate:"omitempty,min=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// JobPatch updates a job partially; nil fields are left unchanged.
type JobPatch struct {
	Title        *string          `json:"title" validate:"omitempty,min=3,max=100"`
	Description  *string          `json:"description" validate:"omitempty,min=10,max=2000"`
	Company      *string          `json:"company" validate:"omitempty,min=2,max=100"`
	Location     *string          `json:"location" validate:"omitempty,min=1,max=100"`
	JobType      *model.JobType   `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	Salary       *SalaryInput     `json:"salary"`
	Skills       *[]string        `json:"skills"`
	Requirements *[]string        `json:"requirements"`
	Benefits     *[]string        `json:"benefits"`
	Status       *model.JobStatus `json:"status" validate:"omitempty,oneof=active closed"`
}

// JobService covers job listings.
type JobService interface {
	// List returns active jobs matching filter, newest first. Employers and
	// admins also see their own jobs in any status.
	List(ctx context.Context, actor Actor, filter model.JobFilter) (*JobList, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	Create(ctx context.Context, actor Actor, in JobInput) (*model.Job, error)
	Update(ctx context.Context, actor Actor, id string, patch JobPatch) (*model.Job, error)
	// Delete removes the job, its applications and their stored resumes.
	Delete(ctx context.Context, actor Actor, id string) error
	// ListByEmployer returns the caller's own jobs in any status.
	ListByEmployer(ctx context.Context, actor Actor, page Page) (*JobList, error)
}

type jobService struct {
	jobs    repository.JobRepository
	apps    repository.ApplicationRepository
	store   storage.Storage
	metrics metrics.Recorder
	log     *logging.Logger
}

func NewJobService(jobs repository.JobRepository, apps repository.ApplicationRepository, store storage.Storage, rec metrics.Recorder, log *logging.Logger) JobService {
	if rec == nil {
		rec = metrics.Noop{}
	}
	if log == nil {
		log = logging.Default()
	}
	return &jobService{jobs: jobs, apps: apps, store: store, metrics: rec, log: log}
}

func (s *jobService) List(ctx context.Context, actor Actor, filter model.JobFilter) (*JobList, error) {
	p := Page{Page: filter.Page, Limit: filter.Limit}.normalize()
	filter.Skills = cleanList(filter.Skills)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Company = strings.TrimSpace(filter.Company)
	if filter.DatePosted < 0 {
		filter.DatePosted = 0
	}

	q := repository.JobQuery{
		Filter: filter,
		Status: model.JobStatusActive,
		Page:   p.query(),
	}
	if canPost(actor) {
		q.VisibleTo = actor.UserID
	}
	res, err := s.jobs.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &JobList{Jobs: res.Items, Pagination: model.NewPagination(p.Page, p.Limit, res.Total)}, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*model.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job")
	}
	return j, nil
}

func canPost(actor Actor) bool {
	return actor.Role == model.RoleEmployer || actor.IsAdmin()
}

func (s *jobService) Create(ctx context.Context, actor Actor, in JobInput) (*model.Job, error) {
	if !canPost(actor) {
		return nil, ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	if in.JobType == "" {
		in.JobType = model.JobTypeFullTime
	}
	if in.Status == "" {
		in.Status = model.JobStatusActive
	}

	var v validation
	v.check(in)
	checkSalary(&v, in.Salary)
	if err := v.err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j := &model.Job{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		Company:      in.Company,
		Location:     in.Location,
		JobType:      in.JobType,
		Salary:       in.Salary.salary(),
		Skills:       cleanList(in.Skills),
		Requirements: cleanList(in.Requirements),
		Benefits:     cleanList(in.Benefits),
		Status:       in.Status,
		EmployerID:   actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.jobs.Create(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.metrics.JobCreated()
	s.log.Info("job created", logging.Fields{"event": "job_created", "job_id": stored.ID, "employer_id": stored.EmployerID})
	return stored, nil
}

func checkSalary(v *validation, in SalaryInput) {
	if in.Min != nil && in.Max != nil && *in.Min > *in.Max {
		v.add("salary.max", "must be greater than or equal to the minimum")
	}
}

func (in SalaryInput) salary() model.Salary {
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = model.DefaultCurrency
	}
	return model.Salary{Min: in.Min, Max: in.Max, Currency: cur}
}

// owned loads job id and checks the actor may modify it.
func (s *jobService) owned(ctx context.Context, actor Actor, id string) (*model.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if j.EmployerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, actor Actor, id string, patch JobPatch) (*model.Job, error) {
	j, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var v validation
	v.check(patch)
	if patch.Salary != nil {
		checkSalary(&v, *patch.Salary)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		j.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		j.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Company != nil {
		j.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Location != nil {
		j.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.JobType != nil {
		j.JobType = *patch.JobType
	}
	if patch.Salary != nil {
		j.Salary = patch.Salary.salary()
	}
	if patch.Skills != nil {
		j.Skills = cleanList(*patch.Skills)
	}
	if patch.Requirements != nil {
		j.Requirements = cleanList(*patch.Requirements)
	}
	if patch.Benefits != nil {
		j.Benefits = cleanList(*patch.Benefits)
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	j.UpdatedAt = time.Now().UTC()

	updated, err := s.jobs.Update(ctx, j)
	if err != nil {
		return nil, notFound(err, "job")
	}
	return updated, nil
}

func (s *jobService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	keys, err := s.apps.ResumeKeysByJob(ctx, id)
	if err != nil {
		return fmt.Errorf("collect resumes: %w", err)
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return notFound(err, "job")
	}
	removeObjects(ctx, s.store, s.log, keys)
	s.log.Info("job deleted", logging.Fields{"event": "job_deleted", "job_id": id, "resumes_removed": len(keys)})
	return nil
}

func (s *jobService) ListByEmployer(ctx context.Context, actor Actor, page Page) (*JobList, error) {
	if !canPost(actor) {
		return nil, ErrForbidden
	}
	p := page.normalize()
	res, err := s.jobs.List(ctx, repository.JobQuery{EmployerID: actor.UserID, Page: p.query()})
	if err != nil {
		return nil, err
	}
	return &JobList{Jobs: res.Items, Pagination: model.NewPagination(p.Page, p.Limit, res.Total)}, nil
}
