package state

import (
	"context"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

// fakeAPI answers with the configured values; unset calls return zero values.
type fakeAPI struct {
	err error

	auth    *client.AuthResponse
	user    *model.User
	jobs    *client.JobList
	job     *model.Job
	apps    *client.ApplicationList
	app     *model.Application
	deleted []string
}

var _ API = (*fakeAPI)(nil)

func (f *fakeAPI) Login(context.Context, client.Credentials) (*client.AuthResponse, error) {
	return f.auth, f.err
}

func (f *fakeAPI) Register(context.Context, client.Registration) (*client.AuthResponse, error) {
	return f.auth, f.err
}

func (f *fakeAPI) Profile(context.Context) (*model.User, error) { return f.user, f.err }

func (f *fakeAPI) UpdateProfile(context.Context, client.ProfileUpdate) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeAPI) ListJobs(context.Context, model.JobFilter) (*client.JobList, error) {
	return f.jobs, f.err
}

func (f *fakeAPI) GetJob(context.Context, string) (*model.Job, error) { return f.job, f.err }

func (f *fakeAPI) CreateJob(context.Context, client.JobDraft) (*model.Job, error) {
	return f.job, f.err
}

func (f *fakeAPI) UpdateJob(context.Context, string, client.JobChanges) (*model.Job, error) {
	return f.job, f.err
}

func (f *fakeAPI) DeleteJob(_ context.Context, id string) error {
	if f.err == nil {
		f.deleted = append(f.deleted, id)
	}
	return f.err
}

func (f *fakeAPI) EmployerJobs(context.Context, client.Page) (*client.JobList, error) {
	return f.jobs, f.err
}

func (f *fakeAPI) Apply(context.Context, client.Application) (*model.Application, error) {
	return f.app, f.err
}

func (f *fakeAPI) UserApplications(context.Context, string, client.Page) (*client.ApplicationList, error) {
	return f.apps, f.err
}

func (f *fakeAPI) JobApplications(context.Context, string, model.ApplicationStatus, client.Page) (*client.ApplicationList, error) {
	return f.apps, f.err
}

func (f *fakeAPI) GetApplication(context.Context, string) (*model.Application, error) {
	return f.app, f.err
}

func (f *fakeAPI) UpdateApplicationStatus(context.Context, string, client.StatusChange) (*model.Application, error) {
	return f.app, f.err
}
