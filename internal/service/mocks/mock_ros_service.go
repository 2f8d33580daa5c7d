package mocks

import (
	"context"

	"rosapi/internal/model"
	"rosapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockROSService struct {
	mock.Mock
}

func (m *MockROSService) FetchAllROSes(ctx context.Context, repo service.RepositoryRef) ([]model.ROSResult, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ROSResult), args.Error(1)
}

func (m *MockROSService) CreateROS(ctx context.Context, repo service.RepositoryRef, content *model.ROSWrapper) (*model.ProcessROSResult, error) {
	args := m.Called(ctx, repo, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessROSResult), args.Error(1)
}

func (m *MockROSService) UpdateROS(ctx context.Context, repo service.RepositoryRef, id string, content *model.ROSWrapper) (*model.ProcessROSResult, error) {
	args := m.Called(ctx, repo, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessROSResult), args.Error(1)
}

func (m *MockROSService) FetchDraftsSentToPublication(ctx context.Context, repo service.RepositoryRef) (*model.ROSIdentifiersResult, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ROSIdentifiersResult), args.Error(1)
}

func (m *MockROSService) PublishROS(ctx context.Context, repo service.RepositoryRef, id string) (*model.ROSPublishedObjectResult, error) {
	args := m.Called(ctx, repo, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ROSPublishedObjectResult), args.Error(1)
}
