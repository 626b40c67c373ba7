package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, q repository.ApplicationQuery) (*repository.PageResult[model.Application], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Application]), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, notes *string) (*model.Application, error) {
	args := m.Called(ctx, id, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByResume(ctx context.Context, key string) ([]model.Application, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) ResumeKeysByJob(ctx context.Context, jobID string) ([]string, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockApplicationRepository) ResumeKeysByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockApplicationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ApplicationStatus]int), args.Error(1)
}
