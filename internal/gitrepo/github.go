package gitrepo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"rosapi/internal/config"
)

const pageSize = 100

// githubClient implements Client on top of go-github.
// It is safe for concurrent use; a token-scoped *github.Client is derived per call.
type githubClient struct {
	httpClient *http.Client
	baseURL    string
	uploadURL  string
}

// NewGitHub builds a Client. When cfg.APIURL is set the client targets that
// GitHub Enterprise instance instead of api.github.com.
func NewGitHub(cfg config.GitHubConfig) Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	upload := cfg.UploadURL
	if upload == "" {
		upload = cfg.APIURL
	}
	return &githubClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:   cfg.APIURL,
		uploadURL: upload,
	}
}

var _ Client = (*githubClient)(nil)

func (g *githubClient) client(token string) (*github.Client, error) {
	gh := github.NewClient(g.httpClient).WithAuthToken(token)
	if g.baseURL == "" {
		return gh, nil
	}
	gh, err := gh.WithEnterpriseURLs(g.baseURL, g.uploadURL)
	if err != nil {
		return nil, fmt.Errorf("github enterprise urls: %w", err)
	}
	return gh, nil
}

// translate maps a 404 to ErrNotFound and leaves every other error untouched,
// so context cancellation still satisfies errors.Is(err, context.Canceled).
func translate(resp *github.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func (g *githubClient) DefaultBranch(ctx context.Context, repo RepositoryRef) (string, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return "", err
	}
	r, resp, err := gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return "", translate(resp, err)
	}
	if r.GetDefaultBranch() == "" {
		return "main", nil
	}
	return r.GetDefaultBranch(), nil
}

func (g *githubClient) BranchHead(ctx context.Context, repo RepositoryRef, branch string) (string, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return "", err
	}
	ref, resp, err := gh.Git.GetRef(ctx, repo.Owner, repo.Name, "refs/heads/"+branch)
	if err != nil {
		return "", translate(resp, err)
	}
	return ref.GetObject().GetSHA(), nil
}

func (g *githubClient) ListBranches(ctx context.Context, repo RepositoryRef) ([]string, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return nil, err
	}

	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
	names := make([]string, 0)
	for {
		branches, resp, err := gh.Repositories.ListBranches(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, translate(resp, err)
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

func (g *githubClient) ListFiles(ctx context.Context, repo RepositoryRef, branch, dir string) ([]string, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return nil, err
	}
	_, entries, resp, err := gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, dir,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return nil, translate(resp, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.GetType() == "file" {
			names = append(names, e.GetName())
		}
	}
	return names, nil
}

func (g *githubClient) ReadFile(ctx context.Context, repo RepositoryRef, branch, path string) (*File, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return nil, err
	}
	fc, _, resp, err := gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return nil, translate(resp, err)
	}
	if fc == nil {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	content, err := fc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &File{Path: path, SHA: fc.GetSHA(), Content: []byte(content)}, nil
}

func (g *githubClient) CreateBranch(ctx context.Context, repo RepositoryRef, branch, fromSHA string) error {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return err
	}
	_, resp, err := gh.Git.CreateRef(ctx, repo.Owner, repo.Name, &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(fromSHA)},
	})
	return translate(resp, err)
}

func (g *githubClient) WriteFile(ctx context.Context, repo RepositoryRef, commit FileCommit) error {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return err
	}
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(commit.Message),
		Content: commit.Content,
		Branch:  github.String(commit.Branch),
	}

	var resp *github.Response
	if commit.SHA == "" {
		_, resp, err = gh.Repositories.CreateFile(ctx, repo.Owner, repo.Name, commit.Path, opts)
	} else {
		opts.SHA = github.String(commit.SHA)
		_, resp, err = gh.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, commit.Path, opts)
	}
	return translate(resp, err)
}

func (g *githubClient) ListOpenPullRequests(ctx context.Context, repo RepositoryRef) ([]PullRequest, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	out := make([]PullRequest, 0)
	for {
		prs, resp, err := gh.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, translate(resp, err)
		}
		for _, pr := range prs {
			out = append(out, fromGitHub(pr))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (g *githubClient) CreatePullRequest(ctx context.Context, repo RepositoryRef, pr NewPullRequest) (*PullRequest, error) {
	gh, err := g.client(repo.AccessToken)
	if err != nil {
		return nil, err
	}
	created, resp, err := gh.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
		Body:  github.String(pr.Body),
	})
	if err != nil {
		return nil, translate(resp, err)
	}
	out := fromGitHub(created)
	return &out, nil
}

func fromGitHub(pr *github.PullRequest) PullRequest {
	return PullRequest{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		URL:        pr.GetHTMLURL(),
		HeadBranch: strings.TrimPrefix(pr.GetHead().GetRef(), "refs/heads/"),
		BaseBranch: pr.GetBase().GetRef(),
		OpenedBy:   pr.GetUser().GetLogin(),
		CreatedAt:  pr.GetCreatedAt().Time,
	}
}
