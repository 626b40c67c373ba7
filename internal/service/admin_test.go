package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	repoMocks "jobboard/internal/repository/mocks"
	storeMocks "jobboard/internal/storage/mocks"
)

type adminDeps struct {
	users *repoMocks.MockUserRepository
	jobs  *repoMocks.MockJobRepository
	apps  *repoMocks.MockApplicationRepository
	store *storeMocks.MockStorage
}

func newAdminDeps() adminDeps {
	return adminDeps{
		users: new(repoMocks.MockUserRepository),
		jobs:  new(repoMocks.MockJobRepository),
		apps:  new(repoMocks.MockApplicationRepository),
		store: new(storeMocks.MockStorage),
	}
}

func (d adminDeps) service() AdminService {
	return NewAdminService(d.users, d.jobs, d.apps, d.store, quietLog())
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("totals", func(t *testing.T) {
		d := newAdminDeps()
		byStatus := map[model.ApplicationStatus]int{
			model.StatusApplied: 3, model.StatusShortlisted: 1, model.StatusRejected: 0, model.StatusHired: 1,
		}
		d.users.On("Count", ctx).Return(10, nil)
		d.jobs.On("Count", ctx).Return(4, nil)
		d.jobs.On("CountActive", ctx).Return(3, nil)
		d.apps.On("Count", ctx).Return(5, nil)
		d.apps.On("CountByStatus", ctx).Return(byStatus, nil)

		st, err := d.service().Stats(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, model.Stats{TotalUsers: 10, TotalJobs: 4, ActiveJobs: 3, TotalApplications: 5}, st.Stats)
		assert.Equal(t, byStatus, st.ApplicationsByStatus)
	})

	t.Run("count failure", func(t *testing.T) {
		d := newAdminDeps()
		d.users.On("Count", ctx).Return(0, errors.New("db fail"))
		_, err := d.service().Stats(ctx, admin)
		assert.EqualError(t, err, "count users: db fail")
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := newAdminDeps().service().Stats(ctx, employer)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	d := newAdminDeps()
	d.users.On("List", ctx, repository.UserQuery{
		Search: "jane",
		Role:   model.RoleEmployer,
		Page:   repository.PageQuery{Limit: 20, Offset: 20},
	}).Return(&repository.PageResult[model.User]{Items: []model.User{{ID: "u-1"}}, Total: 21}, nil)
	svc := d.service()

	res, err := svc.ListUsers(ctx, admin, " jane ", model.RoleEmployer, Page{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, model.Pagination{Current: 2, Pages: 2, Total: 21}, res.Pagination)
	assert.Len(t, res.Users, 1)

	_, err = svc.ListUsers(ctx, admin, "", "guest", Page{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.ListUsers(ctx, applicant, "", "", Page{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade and cleanup", func(t *testing.T) {
		d := newAdminDeps()
		d.users.On("FindByID", ctx, "emp-1").Return(&model.User{ID: "emp-1"}, nil)
		d.apps.On("ResumeKeysByUser", ctx, "emp-1").Return([]string{"resumes/a.pdf"}, nil)
		d.users.On("Delete", ctx, "emp-1").Return(nil)
		d.store.On("Delete", ctx, "resumes/a.pdf").Return(nil)

		require.NoError(t, d.service().DeleteUser(ctx, admin, "emp-1"))
		d.users.AssertExpectations(t)
		d.store.AssertExpectations(t)
	})

	t.Run("self delete", func(t *testing.T) {
		d := newAdminDeps()
		err := d.service().DeleteUser(ctx, admin, admin.UserID)
		assert.ErrorIs(t, err, ErrSelfDelete)
		d.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		d := newAdminDeps()
		d.users.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)
		err := d.service().DeleteUser(ctx, admin, "ghost")
		assert.EqualError(t, err, "user not found")
	})

	t.Run("non admin", func(t *testing.T) {
		err := newAdminDeps().service().DeleteUser(ctx, employer, "app-1")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAdminService_ListApplications(t *testing.T) {
	ctx := context.Background()
	d := newAdminDeps()
	d.apps.On("List", ctx, repository.ApplicationQuery{
		Status: model.StatusHired,
		Page:   repository.PageQuery{Limit: 10},
	}).Return(&repository.PageResult[model.Application]{Items: []model.Application{{ID: "a-1"}}, Total: 1}, nil)

	res, err := d.service().ListApplications(ctx, admin, model.StatusHired, Page{})
	require.NoError(t, err)
	assert.Len(t, res.Applications, 1)
	assert.Equal(t, 1, res.Pagination.Pages)
}
