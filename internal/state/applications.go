package state

import (
	"context"
	"slices"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

const (
	ApplicationsApply        = "applications/applyForJob"
	ApplicationsFetchUser    = "applications/fetchUserApplications"
	ApplicationsFetchJob     = "applications/fetchJobApplications"
	ApplicationsUpdateStatus = "applications/updateApplicationStatus"
	ApplicationsFetchByID    = "applications/fetchApplicationById"
	ApplicationsClearError   = "applications/clearError"
	ApplicationsClearCurrent = "applications/clearCurrentApplication"
	ApplicationsClearJobList = "applications/clearJobApplications"
)

type ApplicationsState struct {
	UserApplications   []model.Application
	JobApplications    []model.Application
	CurrentApplication *model.Application
	Pagination         model.Pagination
	IsLoading          bool
	Error              string
}

func initialApplications() ApplicationsState {
	return ApplicationsState{
		UserApplications: []model.Application{},
		JobApplications:  []model.Application{},
		Pagination:       model.Pagination{Current: 1, Pages: 1},
	}
}

func (s ApplicationsState) clone() ApplicationsState {
	s.UserApplications = slices.Clone(s.UserApplications)
	s.JobApplications = slices.Clone(s.JobApplications)
	s.CurrentApplication = clonePtr(s.CurrentApplication)
	return s
}

func reduceApplications(s ApplicationsState, a Action) ApplicationsState {
	switch a.Type {
	case ApplicationsApply, ApplicationsFetchUser, ApplicationsFetchJob, ApplicationsFetchByID:
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
	case ApplicationsApply:
		if a.Phase == Fulfilled {
			s.UserApplications = prepend(s.UserApplications, *a.Payload.(*model.Application))
		}
	case ApplicationsFetchUser:
		if a.Phase == Fulfilled {
			res := a.Payload.(*client.ApplicationList)
			s.UserApplications, s.Pagination = res.Applications, res.Pagination
		}
	case ApplicationsFetchJob:
		if a.Phase == Fulfilled {
			res := a.Payload.(*client.ApplicationList)
			s.JobApplications, s.Pagination = res.Applications, res.Pagination
		}
	case ApplicationsUpdateStatus:
		if a.Phase == Fulfilled {
			app := a.Payload.(*model.Application)
			s.JobApplications = replaceByID(s.JobApplications, *app, applicationID)
			if s.CurrentApplication != nil && s.CurrentApplication.ID == app.ID {
				s.CurrentApplication = app
			}
		}
	case ApplicationsFetchByID:
		if a.Phase == Fulfilled {
			s.CurrentApplication = a.Payload.(*model.Application)
		}
	case ApplicationsClearError:
		s.Error = ""
	case ApplicationsClearCurrent:
		s.CurrentApplication = nil
	case ApplicationsClearJobList:
		s.JobApplications = []model.Application{}
	}
	return s
}

// ApplyForJob submits an application and puts it first in UserApplications.
func (s *Store) ApplyForJob(ctx context.Context, app client.Application) (*model.Application, error) {
	return thunk(s, ApplicationsApply, "Failed to apply for job", func() (*model.Application, error) {
		return s.api.Apply(ctx, app)
	})
}

func (s *Store) FetchUserApplications(ctx context.Context, userID string, p client.Page) (*client.ApplicationList, error) {
	return thunk(s, ApplicationsFetchUser, "Failed to fetch applications", func() (*client.ApplicationList, error) {
		return s.api.UserApplications(ctx, userID, p)
	})
}

func (s *Store) FetchJobApplications(ctx context.Context, jobID string, status model.ApplicationStatus, p client.Page) (*client.ApplicationList, error) {
	return thunk(s, ApplicationsFetchJob, "Failed to fetch job applications", func() (*client.ApplicationList, error) {
		return s.api.JobApplications(ctx, jobID, status, p)
	})
}

// UpdateApplicationStatus does not touch IsLoading or Error; failures are only returned.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, ch client.StatusChange) (*model.Application, error) {
	app, err := s.api.UpdateApplicationStatus(ctx, id, ch)
	if err != nil {
		return nil, err
	}
	s.Dispatch(Action{Type: ApplicationsUpdateStatus, Phase: Fulfilled, Payload: app})
	return app, nil
}

func (s *Store) FetchApplicationByID(ctx context.Context, id string) (*model.Application, error) {
	return thunk(s, ApplicationsFetchByID, "Failed to fetch application", func() (*model.Application, error) {
		return s.api.GetApplication(ctx, id)
	})
}

func (s *Store) ClearApplicationsError()  { s.Dispatch(Action{Type: ApplicationsClearError}) }
func (s *Store) ClearCurrentApplication() { s.Dispatch(Action{Type: ApplicationsClearCurrent}) }
func (s *Store) ClearJobApplications()    { s.Dispatch(Action{Type: ApplicationsClearJobList}) }
