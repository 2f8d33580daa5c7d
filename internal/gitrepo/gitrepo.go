// Package gitrepo wraps the parts of the GitHub REST API that ROS storage needs.
// The access token travels with every call; clients never hold a credential.
package gitrepo

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("github resource not found")

// RepositoryRef identifies a repository and the caller's credential for it.
type RepositoryRef struct {
	Owner       string
	Name        string
	AccessToken string
}

// File is the decoded content of a file at a given ref plus its blob SHA.
type File struct {
	Path    string
	SHA     string
	Content []byte
}

// FileCommit describes a single-file commit. SHA must be set when the file already exists.
type FileCommit struct {
	Branch  string
	Path    string
	Message string
	Content []byte
	SHA     string
}

// PullRequest is the subset of a GitHub pull request used by the service.
type PullRequest struct {
	Number     int
	Title      string
	URL        string
	HeadBranch string
	BaseBranch string
	OpenedBy   string
	CreatedAt  time.Time
}

// NewPullRequest holds the fields required to open a pull request.
type NewPullRequest struct {
	Title string
	Head  string
	Base  string
	Body  string
}

// Client is the GitHub surface used by the ROS service.
// Methods that look up a single resource return an error wrapping ErrNotFound on 404.
type Client interface {
	DefaultBranch(ctx context.Context, repo RepositoryRef) (string, error)
	// BranchHead returns the commit SHA the branch points at.
	BranchHead(ctx context.Context, repo RepositoryRef, branch string) (string, error)
	ListBranches(ctx context.Context, repo RepositoryRef) ([]string, error)
	// ListFiles returns the names of regular files directly inside dir at branch.
	ListFiles(ctx context.Context, repo RepositoryRef, branch, dir string) ([]string, error)
	ReadFile(ctx context.Context, repo RepositoryRef, branch, path string) (*File, error)
	CreateBranch(ctx context.Context, repo RepositoryRef, branch, fromSHA string) error
	WriteFile(ctx context.Context, repo RepositoryRef, commit FileCommit) error
	ListOpenPullRequests(ctx context.Context, repo RepositoryRef) ([]PullRequest, error)
	CreatePullRequest(ctx context.Context, repo RepositoryRef, pr NewPullRequest) (*PullRequest, error)
}
