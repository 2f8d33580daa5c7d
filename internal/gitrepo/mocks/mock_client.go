package mocks

import (
	"context"

	"rosapi/internal/gitrepo"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) DefaultBranch(ctx context.Context, repo gitrepo.RepositoryRef) (string, error) {
	args := m.Called(ctx, repo)
	return args.String(0), args.Error(1)
}

func (m *MockClient) BranchHead(ctx context.Context, repo gitrepo.RepositoryRef, branch string) (string, error) {
	args := m.Called(ctx, repo, branch)
	return args.String(0), args.Error(1)
}

func (m *MockClient) ListBranches(ctx context.Context, repo gitrepo.RepositoryRef) ([]string, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) ListFiles(ctx context.Context, repo gitrepo.RepositoryRef, branch, dir string) ([]string, error) {
	args := m.Called(ctx, repo, branch, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) ReadFile(ctx context.Context, repo gitrepo.RepositoryRef, branch, path string) (*gitrepo.File, error) {
	args := m.Called(ctx, repo, branch, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitrepo.File), args.Error(1)
}

func (m *MockClient) CreateBranch(ctx context.Context, repo gitrepo.RepositoryRef, branch, fromSHA string) error {
	args := m.Called(ctx, repo, branch, fromSHA)
	return args.Error(0)
}

func (m *MockClient) WriteFile(ctx context.Context, repo gitrepo.RepositoryRef, commit gitrepo.FileCommit) error {
	args := m.Called(ctx, repo, commit)
	return args.Error(0)
}

func (m *MockClient) ListOpenPullRequests(ctx context.Context, repo gitrepo.RepositoryRef) ([]gitrepo.PullRequest, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gitrepo.PullRequest), args.Error(1)
}

func (m *MockClient) CreatePullRequest(ctx context.Context, repo gitrepo.RepositoryRef, pr gitrepo.NewPullRequest) (*gitrepo.PullRequest, error) {
	args := m.Called(ctx, repo, pr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gitrepo.PullRequest), args.Error(1)
}
