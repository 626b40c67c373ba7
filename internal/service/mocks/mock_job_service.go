package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
)

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) List(ctx context.Context, actor service.Actor, filter model.JobFilter) (*service.JobList, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JobList), args.Error(1)
}

func (m *MockJobService) Get(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobService) Create(ctx context.Context, actor service.Actor, in service.JobInput) (*model.Job, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobService) Update(ctx context.Context, actor service.Actor, id string, patch service.JobPatch) (*model.Job, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobService) Delete(ctx context.Context, actor service.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockJobService) ListByEmployer(ctx context.Context, actor service.Actor, page service.Page) (*service.JobList, error) {
	args := m.Called(ctx, actor, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JobList), args.Error(1)
}
