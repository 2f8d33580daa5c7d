package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rosapi/internal/encryption"
	"rosapi/internal/events"
	"rosapi/internal/gitrepo"
	"rosapi/internal/logging"
	"rosapi/internal/model"
	"rosapi/internal/repository"
	"rosapi/internal/storage"
)

var (
	ErrWrapperNil = errors.New("ros payload is nil")
)

const (
	branchPrefix = "ros-"
	fileSuffix   = ".ros.json"
)

var (
	rosIDPattern = regexp.MustCompile(`^ros-[a-zA-Z0-9]{1,64}$`)
	tracer       = otel.Tracer("rosapi/internal/service")

	// Overridden in tests.
	newROSID = func() string {
		return branchPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	}
	now = time.Now
)

// RepositoryRef identifies the GitHub repository a request targets and carries the
// caller's access token. It is never stored beyond the call.
type RepositoryRef = gitrepo.RepositoryRef

// ROSService defines the use cases for ROS documents kept in a GitHub repository.
//
// Failures of GitHub, encryption or validation are reported through the status of
// the returned result. A non-nil error means the call itself faulted (cancelled
// context, exceeded deadline or invalid arguments) and no result is available.
type ROSService interface {
	// FetchAllROSes returns one result per ROS found as published file, draft branch or open pull request.
	FetchAllROSes(ctx context.Context, repo RepositoryRef) ([]model.ROSResult, error)

	// CreateROS validates, encrypts and commits a new ROS on a fresh branch.
	CreateROS(ctx context.Context, repo RepositoryRef, content *model.ROSWrapper) (*model.ProcessROSResult, error)

	// UpdateROS commits new content for id on its branch, creating the branch when missing.
	UpdateROS(ctx context.Context, repo RepositoryRef, id string, content *model.ROSWrapper) (*model.ProcessROSResult, error)

	// FetchDraftsSentToPublication lists ROSes with an open pull request.
	FetchDraftsSentToPublication(ctx context.Context, repo RepositoryRef) (*model.ROSIdentifiersResult, error)

	// PublishROS opens a pull request from the ROS branch into the default branch.
	PublishROS(ctx context.Context, repo RepositoryRef, id string) (*model.ROSPublishedObjectResult, error)
}

// Dependencies are the collaborators of the ROS service. Archive and Events are optional.
type Dependencies struct {
	Git     gitrepo.Client
	Cipher  encryption.Cipher
	Records repository.RecordRepository
	Archive storage.Storage
	Events  events.Publisher
	Logger  *slog.Logger
}

// Options tune where ROS files live and how events are named.
type Options struct {
	ROSDirectory  string
	SubjectPrefix string
}

// rosService is a concrete implementation of ROSService.
type rosService struct {
	git       gitrepo.Client
	cipher    encryption.Cipher
	records   repository.RecordRepository
	archive   storage.Storage
	events    events.Publisher
	logger    *slog.Logger
	validate  *validator.Validate
	dir       string
	subjectNS string
}

// NewROSService constructs a new ROSService.
func NewROSService(deps Dependencies, opts Options) ROSService {
	s := &rosService{
		git:       deps.Git,
		cipher:    deps.Cipher,
		records:   deps.Records,
		archive:   deps.Archive,
		events:    deps.Events,
		logger:    deps.Logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		dir:       strings.Trim(opts.ROSDirectory, "/"),
		subjectNS: opts.SubjectPrefix,
	}
	if s.events == nil {
		s.events = events.Noop()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = logging.WithComponent(s.logger, "ros_service")
	if s.dir == "" {
		s.dir = ".security/ros"
	}
	return s
}

func (s *rosService) filePath(id string) string {
	return path.Join(s.dir, id+fileSuffix)
}

func (s *rosService) startSpan(ctx context.Context, op string, repo RepositoryRef, id string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("ros.owner", repo.Owner),
		attribute.String("ros.repository", repo.Name),
	}
	if id != "" {
		attrs = append(attrs, attribute.String("ros.id", id))
	}
	return tracer.Start(ctx, "ROSService."+op, trace.WithAttributes(attrs...))
}

// isFault reports errors that abort the call instead of producing a failure status.
func isFault(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isROSBranch(name string) bool {
	return rosIDPattern.MatchString(name)
}

func idFromFilename(name string) (string, bool) {
	id, ok := strings.CutSuffix(name, fileSuffix)
	if !ok || !rosIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

func (s *rosService) FetchAllROSes(ctx context.Context, repo RepositoryRef) ([]model.ROSResult, error) {
	ctx, span := s.startSpan(ctx, "FetchAllROSes", repo, "")
	defer span.End()

	defaultBranch, err := s.git.DefaultBranch(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("resolve default branch: %w", err)
	}

	published, err := s.git.ListFiles(ctx, repo, defaultBranch, s.dir)
	if err != nil && !errors.Is(err, gitrepo.ErrNotFound) {
		return nil, fmt.Errorf("list published: %w", err)
	}
	branches, err := s.git.ListBranches(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	pulls, err := s.git.ListOpenPullRequests(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}

	states := make(map[string]model.ROSState)
	drafts := make(map[string]bool)
	for _, name := range published {
		if id, ok := idFromFilename(name); ok {
			states[id] = model.StatePublished
		}
	}
	for _, b := range branches {
		if isROSBranch(b) {
			states[b] = model.StateDraft
			drafts[b] = true
		}
	}
	for _, pr := range pulls {
		if isROSBranch(pr.HeadBranch) {
			states[pr.HeadBranch] = model.StateSentForApproval
		}
	}

	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]model.ROSResult, 0, len(ids))
	for _, id := range ids {
		branch := defaultBranch
		if drafts[id] {
			branch = id
		}
		res, err := s.readROS(ctx, repo, branch, id)
		if err != nil {
			return nil, err
		}
		res.State = states[id]
		results = append(results, res)
	}
	return results, nil
}

func (s *rosService) readROS(ctx context.Context, repo RepositoryRef, branch, id string) (model.ROSResult, error) {
	res := model.ROSResult{ID: id}

	f, err := s.git.ReadFile(ctx, repo, branch, s.filePath(id))
	switch {
	case isFault(err):
		return res, err
	case errors.Is(err, gitrepo.ErrNotFound):
		res.Status = model.ContentFileNotFound
		return res, nil
	case err != nil:
		s.logger.WarnContext(ctx, "ros_read_failed", "ros_id", id, "branch", branch, "error", err.Error())
		res.Status = model.ContentFailure
		return res, nil
	}

	plain, err := s.cipher.Decrypt(string(f.Content))
	if err != nil {
		s.logger.WarnContext(ctx, "ros_decrypt_failed", "ros_id", id, "error", err.Error())
		res.Status = model.ContentDecryptionFailed
		return res, nil
	}

	res.Status = model.ContentSuccess
	res.Content = string(plain)
	return res, nil
}

func (s *rosService) CreateROS(ctx context.Context, repo RepositoryRef, content *model.ROSWrapper) (*model.ProcessROSResult, error) {
	id := newROSID()
	ctx, span := s.startSpan(ctx, "CreateROS", repo, id)
	defer span.End()

	if content == nil {
		return nil, ErrWrapperNil
	}
	return s.commit(ctx, repo, id, content, true)
}

func (s *rosService) UpdateROS(ctx context.Context, repo RepositoryRef, id string, content *model.ROSWrapper) (*model.ProcessROSResult, error) {
	ctx, span := s.startSpan(ctx, "UpdateROS", repo, id)
	defer span.End()

	if content == nil {
		return nil, ErrWrapperNil
	}
	if !rosIDPattern.MatchString(id) {
		return processResult(id, model.ProcessingROSNotValid, "ROS id is not valid"), nil
	}
	return s.commit(ctx, repo, id, content, false)
}

// commit runs validate, encrypt, ensure branch, write. fresh requires that the branch does not exist yet.
func (s *rosService) commit(ctx context.Context, repo RepositoryRef, id string, content *model.ROSWrapper, fresh bool) (*model.ProcessROSResult, error) {
	if err := s.checkContent(content); err != nil {
		return processResult(id, model.ProcessingROSNotValid, "ROS is not valid: "+err.Error()), nil
	}

	sealed, err := s.cipher.Encrypt([]byte(content.ROS))
	if err != nil {
		s.logger.ErrorContext(ctx, "ros_encrypt_failed", "ros_id", id, "error", err.Error())
		return processResult(id, model.ProcessingEncryptionFailed, "Could not encrypt ROS"), nil
	}

	if err := s.ensureBranch(ctx, repo, id, fresh); err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "ros_branch_failed", "ros_id", id, "error", err.Error())
		return processResult(id, model.ProcessingCouldNotCreateBranch, "Could not create branch for ROS"), nil
	}

	filePath := s.filePath(id)
	var existingSHA string
	if !fresh {
		f, err := s.git.ReadFile(ctx, repo, id, filePath)
		switch {
		case err == nil:
			existingSHA = f.SHA
		case isFault(err):
			return nil, err
		case !errors.Is(err, gitrepo.ErrNotFound):
			s.logger.ErrorContext(ctx, "ros_read_failed", "ros_id", id, "error", err.Error())
			return processResult(id, model.ProcessingErrorWhenUpdatingROS, "Could not read current ROS"), nil
		}
	}

	status, verb := model.ProcessingCreatedROS, "Create"
	if existingSHA != "" {
		status, verb = model.ProcessingUpdatedROS, "Update"
	}

	err = s.git.WriteFile(ctx, repo, gitrepo.FileCommit{
		Branch:  id,
		Path:    filePath,
		Message: fmt.Sprintf("%s ROS %s", verb, id),
		Content: []byte(sealed),
		SHA:     existingSHA,
	})
	if err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "ros_write_failed", "ros_id", id, "error", err.Error())
		return processResult(id, model.ProcessingErrorWhenUpdatingROS, "Could not commit ROS"), nil
	}

	s.record(ctx, repo, id, model.StateDraft)

	msg := "New ROS created"
	if status == model.ProcessingUpdatedROS {
		msg = "ROS updated"
	}
	return processResult(id, status, msg), nil
}

// ensureBranch creates branch id from the head of the default branch when it does not exist.
func (s *rosService) ensureBranch(ctx context.Context, repo RepositoryRef, id string, fresh bool) error {
	_, err := s.git.BranchHead(ctx, repo, id)
	switch {
	case err == nil && fresh:
		return fmt.Errorf("branch %s already exists", id)
	case err == nil:
		return nil
	case !errors.Is(err, gitrepo.ErrNotFound):
		return err
	}

	defaultBranch, err := s.git.DefaultBranch(ctx, repo)
	if err != nil {
		return fmt.Errorf("resolve default branch: %w", err)
	}
	baseSHA, err := s.git.BranchHead(ctx, repo, defaultBranch)
	if err != nil {
		return fmt.Errorf("resolve %s head: %w", defaultBranch, err)
	}
	return s.git.CreateBranch(ctx, repo, id, baseSHA)
}

func (s *rosService) FetchDraftsSentToPublication(ctx context.Context, repo RepositoryRef) (*model.ROSIdentifiersResult, error) {
	ctx, span := s.startSpan(ctx, "FetchDraftsSentToPublication", repo, "")
	defer span.End()

	pulls, err := s.git.ListOpenPullRequests(ctx, repo)
	if err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "ros_list_pull_requests_failed", "error", err.Error())
		return &model.ROSIdentifiersResult{
			IDs:           []model.ROSIdentifier{},
			Status:        model.SimpleFailure,
			StatusMessage: "Could not fetch pull requests",
		}, nil
	}

	ids := make([]model.ROSIdentifier, 0, len(pulls))
	for _, pr := range pulls {
		if isROSBranch(pr.HeadBranch) {
			ids = append(ids, model.ROSIdentifier{ID: pr.HeadBranch, State: model.StateSentForApproval})
		}
	}
	return &model.ROSIdentifiersResult{
		IDs:           ids,
		Status:        model.SimpleSuccess,
		StatusMessage: fmt.Sprintf("Found %d ROS(es) sent to publication", len(ids)),
	}, nil
}

func (s *rosService) PublishROS(ctx context.Context, repo RepositoryRef, id string) (*model.ROSPublishedObjectResult, error) {
	ctx, span := s.startSpan(ctx, "PublishROS", repo, id)
	defer span.End()

	if !rosIDPattern.MatchString(id) {
		return publishFailure("ROS id is not valid"), nil
	}

	defaultBranch, err := s.git.DefaultBranch(ctx, repo)
	if err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "ros_default_branch_failed", "ros_id", id, "error", err.Error())
		return publishFailure("Could not resolve default branch"), nil
	}

	draft, err := s.git.ReadFile(ctx, repo, id, s.filePath(id))
	if err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "ros_publish_draft_missing", "ros_id", id, "error", err.Error())
		return publishFailure("Could not find ROS draft"), nil
	}

	pr, err := s.git.CreatePullRequest(ctx, repo, gitrepo.NewPullRequest{
		Title: "Publish ROS " + id,
		Head:  id,
		Base:  defaultBranch,
		Body:  fmt.Sprintf("Sending ROS %s for approval.", id),
	})
	if err != nil {
		if isFault(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "ros_publish_failed", "ros_id", id, "error", err.Error())
		return publishFailure("Could not create pull request"), nil
	}

	s.afterPublish(ctx, repo, id, draft.Content, pr)

	return &model.ROSPublishedObjectResult{
		PendingPullRequest: &model.PullRequestObject{
			URL:       pr.URL,
			Title:     pr.Title,
			OpenedBy:  pr.OpenedBy,
			CreatedAt: pr.CreatedAt,
		},
		Status:        model.SimpleSuccess,
		StatusMessage: "ROS sent for publication",
	}, nil
}

func processResult(id string, status model.ProcessingStatus, msg string) *model.ProcessROSResult {
	return &model.ProcessROSResult{ROSID: id, Status: status, StatusMessage: msg}
}

func publishFailure(msg string) *model.ROSPublishedObjectResult {
	return &model.ROSPublishedObjectResult{Status: model.SimpleFailure, StatusMessage: msg}
}
