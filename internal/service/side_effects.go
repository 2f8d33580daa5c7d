package service

import (
	"bytes"
	"context"

	"rosapi/internal/events"
	"rosapi/internal/gitrepo"
	"rosapi/internal/model"
	"rosapi/internal/storage"
)

// record upserts the bookkeeping row. Failures are logged; GitHub stays the source of truth.
func (s *rosService) record(ctx context.Context, repo RepositoryRef, id string, state model.ROSState) {
	if s.records == nil {
		return
	}
	err := s.records.Upsert(ctx, &model.ROSRecord{
		Owner:      repo.Owner,
		Repository: repo.Name,
		ID:         id,
		Branch:     id,
		State:      state,
		UpdatedAt:  now().UTC(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "ros_record_upsert_failed", "ros_id", id, "state", string(state), "error", err.Error())
	}
}

// afterPublish archives the encrypted draft, announces the pull request and marks the record.
// None of these steps can turn a successful publish into a failure.
func (s *rosService) afterPublish(ctx context.Context, repo RepositoryRef, id string, sealed []byte, pr *gitrepo.PullRequest) {
	at := now()

	if s.archive != nil {
		key := storage.SnapshotKey(repo.Owner, repo.Name, id, at)
		_, err := s.archive.Put(ctx, key, bytes.NewReader(sealed), storage.PutObjectOptions{
			Size:        int64(len(sealed)),
			ContentType: "application/octet-stream",
			Metadata: map[string]string{
				"ros-id":       id,
				"pull-request": pr.URL,
			},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "ros_snapshot_failed", "ros_id", id, "key", key, "error", err.Error())
		}
	}

	evt := events.ROSEvent{
		ROSID:          id,
		Owner:          repo.Owner,
		Repository:     repo.Name,
		PullRequestURL: pr.URL,
		OccurredAt:     at.UTC(),
	}
	if err := s.events.Publish(ctx, events.Subject(s.subjectNS, events.SubjectSentForPublication), evt); err != nil {
		s.logger.WarnContext(ctx, "ros_event_failed", "ros_id", id, "error", err.Error())
	}

	s.record(ctx, repo, id, model.StateSentForApproval)
}
