package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, actor service.Actor) (*model.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, actor service.Actor, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) UploadResume(ctx context.Context, actor service.Actor, up storage.ResumeUpload) (*model.User, error) {
	args := m.Called(ctx, actor, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
