package service

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/logging"
	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/storage"
)

// AdminStats extends the platform totals with the application pipeline.
type AdminStats struct {
	model.Stats
	ApplicationsByStatus map[model.ApplicationStatus]int `json:"applications_by_status"`
}

// AdminService covers platform administration. Every call requires an admin actor.
type AdminService interface {
	Stats(ctx context.Context, actor Actor) (*AdminStats, error)
	ListUsers(ctx context.Context, actor Actor, search string, role model.Role, page Page) (*UserList, error)
	// DeleteUser removes an account together with its jobs, applications and resumes.
	DeleteUser(ctx context.Context, actor Actor, id string) error
	ListApplications(ctx context.Context, actor Actor, status model.ApplicationStatus, page Page) (*ApplicationList, error)
}

type adminService struct {
	users repository.UserRepository
	jobs  repository.JobRepository
	apps  repository.ApplicationRepository
	store storage.Storage
	log   *logging.Logger
}

func NewAdminService(users repository.UserRepository, jobs repository.JobRepository, apps repository.ApplicationRepository, store storage.Storage, log *logging.Logger) AdminService {
	if log == nil {
		log = logging.Default()
	}
	return &adminService{users: users, jobs: jobs, apps: apps, store: store, log: log}
}

func (s *adminService) Stats(ctx context.Context, actor Actor) (*AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	var (
		st  AdminStats
		err error
	)
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.TotalJobs, err = s.jobs.Count(ctx); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	if st.ActiveJobs, err = s.jobs.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active jobs: %w", err)
	}
	if st.TotalApplications, err = s.apps.Count(ctx); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	if st.ApplicationsByStatus, err = s.apps.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	return &st, nil
}

func (s *adminService) ListUsers(ctx context.Context, actor Actor, search string, role model.Role, page Page) (*UserList, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if role != "" && !role.Valid() {
		var v validation
		v.add("role", "must be one of: applicant, employer, admin")
		return nil, v.err()
	}
	p := page.normalize()
	res, err := s.users.List(ctx, repository.UserQuery{
		Search: strings.TrimSpace(search),
		Role:   role,
		Page:   p.query(),
	})
	if err != nil {
		return nil, err
	}
	return &UserList{Users: res.Items, Pagination: model.NewPagination(p.Page, p.Limit, res.Total)}, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == actor.UserID {
		return ErrSelfDelete
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFound(err, "user")
	}
	keys, err := s.apps.ResumeKeysByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("collect resumes: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}
	removeObjects(ctx, s.store, s.log, keys)
	s.log.Info("user deleted", logging.Fields{"event": "user_deleted", "user_id": id, "by": actor.UserID, "resumes_removed": len(keys)})
	return nil
}

func (s *adminService) ListApplications(ctx context.Context, actor Actor, status model.ApplicationStatus, page Page) (*ApplicationList, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if status != "" && !status.Valid() {
		var v validation
		v.add("status", "must be one of: applied, shortlisted, rejected, hired")
		return nil, v.err()
	}
	p := page.normalize()
	res, err := s.apps.List(ctx, repository.ApplicationQuery{Status: status, Page: p.query()})
	if err != nil {
		return nil, err
	}
	return &ApplicationList{Applications: res.Items, Pagination: model.NewPagination(p.Page, p.Limit, res.Total)}, nil
}
