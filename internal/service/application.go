package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/logging"
	"jobboard/internal/metrics"
	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/storage"
)

// ApplyInput is an application to a job. The resume file, if any, is passed
// separately; without one the applicant's profile resume is attached.
type ApplyInput struct {
	JobID       string `json:"job_id" form:"jobId" validate:"required"`
	CoverLetter string `json:"cover_letter" form:"coverLetter" validate:"max=1000"`
	Notes       string `json:"notes" form:"notes" validate:"max=1000"`
}

// StatusInput moves an application through the hiring pipeline.
// A nil Notes keeps the existing notes.
type StatusInput struct {
	Status model.ApplicationStatus `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
	Notes  *string                 `json:"notes" validate:"omitempty,max=1000"`
}

// ResumeFile is an opened resume ready to stream. Callers must close Body.
type ResumeFile struct {
	Body     io.ReadCloser
	Info     storage.ObjectInfo
	Filename string
}

// ApplicationService covers applying to jobs and reviewing applications.
type ApplicationService interface {
	Apply(ctx context.Context, actor Actor, in ApplyInput, resume *storage.ResumeUpload) (*model.Application, error)
	ListByApplicant(ctx context.Context, actor Actor, applicantID string, page Page) (*ApplicationList, error)
	// ListByJob lists a job's applications; an empty status means all.
	ListByJob(ctx context.Context, actor Actor, jobID string, status model.ApplicationStatus, page Page) (*ApplicationList, error)
	Get(ctx context.Context, actor Actor, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, in StatusInput) (*model.Application, error)
	// OpenResume opens a stored resume for anyone allowed to see an application
	// or profile referencing it.
	OpenResume(ctx context.Context, actor Actor, key string) (*ResumeFile, error)
}

type applicationService struct {
	apps      repository.ApplicationRepository
	jobs      repository.JobRepository
	users     repository.UserRepository
	store     storage.Storage
	maxResume int64
	metrics   metrics.Recorder
	log       *logging.Logger
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	store storage.Storage,
	maxResume int64,
	rec metrics.Recorder,
	log *logging.Logger,
) ApplicationService {
	if rec == nil {
		rec = metrics.Noop{}
	}
	if log == nil {
		log = logging.Default()
	}
	return &applicationService{
		apps:      apps,
		jobs:      jobs,
		users:     users,
		store:     store,
		maxResume: maxResume,
		metrics:   rec,
		log:       log,
	}
}

func (s *applicationService) Apply(ctx context.Context, actor Actor, in ApplyInput, resume *storage.ResumeUpload) (*model.Application, error) {
	if actor.Role != model.RoleApplicant {
		return nil, ErrForbidden
	}
	in.JobID = strings.TrimSpace(in.JobID)
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)

	var v validation
	v.check(in)
	if err := v.err(); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if job.Status != model.JobStatusActive {
		return nil, ErrJobClosed
	}
	applied, err := s.apps.Exists(ctx, in.JobID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	now := time.Now().UTC()
	a := &model.Application{
		ID:          uuid.New().String(),
		JobID:       job.ID,
		ApplicantID: actor.UserID,
		Status:      model.StatusApplied,
		CoverLetter: in.CoverLetter,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var uploaded string
	if resume != nil {
		info, err := storage.PutResume(ctx, s.store, *resume, s.maxResume)
		if err != nil {
			return nil, uploadErr(err)
		}
		uploaded = info.Key
		a.Resume, a.ResumeFilename = info.Key, path.Base(resume.Filename)
	} else {
		u, err := s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			return nil, notFound(err, "user")
		}
		a.Resume, a.ResumeFilename = u.Profile.Resume, u.Profile.ResumeFilename
	}

	stored, err := s.apps.Create(ctx, a)
	if err != nil {
		if uploaded != "" {
			if delErr := s.store.Delete(ctx, uploaded); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	s.metrics.ApplicationStatus(model.StatusApplied)
	s.log.Info("application submitted", logging.Fields{
		"event":          "application_submitted",
		"application_id": stored.ID,
		"job_id":         stored.JobID,
		"with_resume":    stored.Resume != "",
	})
	return stored, nil
}

func (s *applicationService) ListByApplicant(ctx context.Context, actor Actor, applicantID string, page Page) (*ApplicationList, error) {
	if applicantID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.list(ctx, repository.ApplicationQuery{ApplicantID: applicantID}, page)
}

func (s *applicationService) ListByJob(ctx context.Context, actor Actor, jobID string, status model.ApplicationStatus, page Page) (*ApplicationList, error) {
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		var v validation
		v.add("status", "must be one of: applied, shortlisted, rejected, hired")
		return nil, v.err()
	}
	return s.list(ctx, repository.ApplicationQuery{JobID: jobID, Status: status}, page)
}

func (s *applicationService) list(ctx context.Context, q repository.ApplicationQuery, page Page) (*ApplicationList, error) {
	p := page.normalize()
	q.Page = p.query()
	res, err := s.apps.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ApplicationList{Applications: res.Items, Pagination: model.NewPagination(p.Page, p.Limit, res.Total)}, nil
}

// ownedJob loads a job the actor may review applications for.
func (s *applicationService) ownedJob(ctx context.Context, actor Actor, jobID string) (*model.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job")
	}
	if job.EmployerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return job, nil
}

// canView reports whether actor is the applicant, the job owner or an admin.
func (s *applicationService) canView(ctx context.Context, actor Actor, a *model.Application) (bool, error) {
	if actor.IsAdmin() || a.ApplicantID == actor.UserID {
		return true, nil
	}
	if actor.Role != model.RoleEmployer {
		return false, nil
	}
	job, err := s.jobs.FindByID(ctx, a.JobID)
	if err != nil {
		return false, notFound(err, "job")
	}
	return job.EmployerID == actor.UserID, nil
}

func (s *applicationService) Get(ctx context.Context, actor Actor, id string) (*model.Application, error) {
	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application")
	}
	ok, err := s.canView(ctx, actor, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actor Actor, id string, in StatusInput) (*model.Application, error) {
	var v validation
	v.check(in)
	if err := v.err(); err != nil {
		return nil, err
	}

	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if _, err := s.ownedJob(ctx, actor, a.JobID); err != nil {
		return nil, err
	}

	updated, err := s.apps.UpdateStatus(ctx, id, in.Status, in.Notes)
	if err != nil {
		return nil, notFound(err, "application")
	}
	if in.Status != a.Status {
		s.metrics.ApplicationStatus(in.Status)
	}
	s.log.Info("application status updated", logging.Fields{
		"event":          "application_status_updated",
		"application_id": id,
		"from":           a.Status,
		"to":             in.Status,
	})
	return updated, nil
}

func (s *applicationService) OpenResume(ctx context.Context, actor Actor, key string) (*ResumeFile, error) {
	if !storage.ValidResumeKey(key) {
		return nil, ErrResumeMissing
	}
	filename, err := s.resumeAccess(ctx, actor, key)
	if err != nil {
		return nil, err
	}

	body, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrResumeMissing
		}
		return nil, fmt.Errorf("open resume: %w", err)
	}
	if filename == "" {
		filename = info.Metadata["original-filename"]
	}
	if filename == "" {
		filename = path.Base(key)
	}
	return &ResumeFile{Body: body, Info: info, Filename: filename}, nil
}

// resumeAccess returns the display filename of key if actor may read it.
func (s *applicationService) resumeAccess(ctx context.Context, actor Actor, key string) (string, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return "", notFound(err, "user")
	}
	if u.Profile.Resume == key {
		return u.Profile.ResumeFilename, nil
	}

	apps, err := s.apps.FindByResume(ctx, key)
	if err != nil {
		return "", fmt.Errorf("find resume: %w", err)
	}
	if len(apps) == 0 {
		if actor.IsAdmin() {
			return "", nil
		}
		return "", ErrResumeMissing
	}
	for i := range apps {
		ok, err := s.canView(ctx, actor, &apps[i])
		if err != nil && !errors.Is(err, ErrNotFound) {
			return "", err
		}
		if ok {
			return apps[i].ResumeFilename, nil
		}
	}
	return "", ErrForbidden
}
