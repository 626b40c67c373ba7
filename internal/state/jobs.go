package state

import (
	"context"
	"slices"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

const (
	JobsFetch         = "jobs/fetchJobs"
	JobsFetchByID     = "jobs/fetchJobById"
	JobsCreate        = "jobs/createJob"
	JobsUpdate        = "jobs/updateJob"
	JobsDelete        = "jobs/deleteJob"
	JobsFetchEmployer = "jobs/fetchEmployerJobs"
	JobsSetFilters    = "jobs/setFilters"
	JobsClearFilters  = "jobs/clearFilters"
	JobsClearCurrent  = "jobs/clearCurrentJob"
	JobsClearError    = "jobs/clearError"
)

// Filters are the search inputs kept between job list fetches.
type Filters struct {
	Search   string
	Location string
	JobType  model.JobType
	Skills   []string
}

// FilterPatch changes only the non-nil fields of Filters.
type FilterPatch struct {
	Search   *string
	Location *string
	JobType  *model.JobType
	Skills   *[]string
}

type JobsState struct {
	Jobs         []model.Job
	CurrentJob   *model.Job
	EmployerJobs []model.Job
	Pagination   model.Pagination
	Filters      Filters
	IsLoading    bool
	Error        string
}

func initialJobs() JobsState {
	return JobsState{
		Jobs:         []model.Job{},
		EmployerJobs: []model.Job{},
		Pagination:   model.Pagination{Current: 1, Pages: 1},
		Filters:      Filters{Skills: []string{}},
	}
}

func (s JobsState) clone() JobsState {
	s.Jobs = slices.Clone(s.Jobs)
	s.EmployerJobs = slices.Clone(s.EmployerJobs)
	s.CurrentJob = clonePtr(s.CurrentJob)
	s.Filters.Skills = slices.Clone(s.Filters.Skills)
	return s
}

func (f Filters) merge(p FilterPatch) Filters {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.JobType != nil {
		f.JobType = *p.JobType
	}
	if p.Skills != nil {
		f.Skills = slices.Clone(*p.Skills)
	}
	return f
}

func reduceJobs(s JobsState, a Action) JobsState {
	switch a.Type {
	case JobsFetch, JobsFetchByID, JobsCreate, JobsFetchEmployer:
		switch a.Phase {
		case Pending:
			s.IsLoading, s.Error = true, ""
			return s
		case Rejected:
			s.IsLoading, s.Error = false, a.Error
			return s
		case Fulfilled:
			s.IsLoading = false
		}
	}

	switch a.Type {
	case JobsFetch:
		if a.Phase == Fulfilled {
			res := a.Payload.(*client.JobList)
			s.Jobs, s.Pagination = res.Jobs, res.Pagination
		}
	case JobsFetchByID:
		if a.Phase == Fulfilled {
			s.CurrentJob = a.Payload.(*model.Job)
		}
	case JobsCreate:
		if a.Phase == Fulfilled {
			s.EmployerJobs = prepend(s.EmployerJobs, *a.Payload.(*model.Job))
		}
	case JobsUpdate:
		if a.Phase == Fulfilled {
			j := a.Payload.(*model.Job)
			s.EmployerJobs = replaceByID(s.EmployerJobs, *j, jobID)
			if s.CurrentJob != nil && s.CurrentJob.ID == j.ID {
				s.CurrentJob = j
			}
		}
	case JobsDelete:
		if a.Phase == Fulfilled {
			id := a.Payload.(string)
			s.EmployerJobs = removeByID(s.EmployerJobs, id, jobID)
			s.Jobs = removeByID(s.Jobs, id, jobID)
		}
	case JobsFetchEmployer:
		if a.Phase == Fulfilled {
			res := a.Payload.(*client.JobList)
			s.EmployerJobs, s.Pagination = res.Jobs, res.Pagination
		}
	case JobsSetFilters:
		s.Filters = s.Filters.merge(a.Payload.(FilterPatch))
	case JobsClearFilters:
		s.Filters = initialJobs().Filters
	case JobsClearCurrent:
		s.CurrentJob = nil
	case JobsClearError:
		s.Error = ""
	}
	return s
}

func (s *Store) FetchJobs(ctx context.Context, f model.JobFilter) (*client.JobList, error) {
	return thunk(s, JobsFetch, "Failed to fetch jobs", func() (*client.JobList, error) {
		return s.api.ListJobs(ctx, f)
	})
}

func (s *Store) FetchJobByID(ctx context.Context, id string) (*model.Job, error) {
	return thunk(s, JobsFetchByID, "Failed to fetch job", func() (*model.Job, error) {
		return s.api.GetJob(ctx, id)
	})
}

// CreateJob posts a job and puts it first in EmployerJobs.
func (s *Store) CreateJob(ctx context.Context, d client.JobDraft) (*model.Job, error) {
	return thunk(s, JobsCreate, "Failed to create job", func() (*model.Job, error) {
		return s.api.CreateJob(ctx, d)
	})
}

// UpdateJob does not touch IsLoading or Error; failures are only returned.
func (s *Store) UpdateJob(ctx context.Context, id string, ch client.JobChanges) (*model.Job, error) {
	j, err := s.api.UpdateJob(ctx, id, ch)
	if err != nil {
		return nil, err
	}
	s.Dispatch(Action{Type: JobsUpdate, Phase: Fulfilled, Payload: j})
	return j, nil
}

// DeleteJob removes the job from Jobs and EmployerJobs once the server confirms.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	if err := s.api.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.Dispatch(Action{Type: JobsDelete, Phase: Fulfilled, Payload: id})
	return nil
}

func (s *Store) FetchEmployerJobs(ctx context.Context, p client.Page) (*client.JobList, error) {
	return thunk(s, JobsFetchEmployer, "Failed to fetch your jobs", func() (*client.JobList, error) {
		return s.api.EmployerJobs(ctx, p)
	})
}

func (s *Store) SetFilters(p FilterPatch) { s.Dispatch(Action{Type: JobsSetFilters, Payload: p}) }
func (s *Store) ClearFilters()            { s.Dispatch(Action{Type: JobsClearFilters}) }
func (s *Store) ClearCurrentJob()         { s.Dispatch(Action{Type: JobsClearCurrent}) }
func (s *Store) ClearJobsError()          { s.Dispatch(Action{Type: JobsClearError}) }
