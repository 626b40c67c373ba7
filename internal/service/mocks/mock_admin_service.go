package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Stats(ctx context.Context, actor service.Actor) (*service.AdminStats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminStats), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context, actor service.Actor, search string, role model.Role, page service.Page) (*service.UserList, error) {
	args := m.Called(ctx, actor, search, role, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserList), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, actor service.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockAdminService) ListApplications(ctx context.Context, actor service.Actor, status model.ApplicationStatus, page service.Page) (*service.ApplicationList, error) {
	args := m.Called(ctx, actor, status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationList), args.Error(1)
}
