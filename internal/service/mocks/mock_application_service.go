package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, actor service.Actor, in service.ApplyInput, resume *storage.ResumeUpload) (*model.Application, error) {
	args := m.Called(ctx, actor, in, resume)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) ListByApplicant(ctx context.Context, actor service.Actor, applicantID string, page service.Page) (*service.ApplicationList, error) {
	args := m.Called(ctx, actor, applicantID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationList), args.Error(1)
}

func (m *MockApplicationService) ListByJob(ctx context.Context, actor service.Actor, jobID string, status model.ApplicationStatus, page service.Page) (*service.ApplicationList, error) {
	args := m.Called(ctx, actor, jobID, status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationList), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, actor service.Actor, id string) (*model.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor service.Actor, id string, in service.StatusInput) (*model.Application, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) OpenResume(ctx context.Context, actor service.Actor, key string) (*service.ResumeFile, error) {
	args := m.Called(ctx, actor, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResumeFile), args.Error(1)
}
