// Package events announces ROS workflow transitions to other systems.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SubjectSentForPublication is appended to the configured subject prefix.
const SubjectSentForPublication = "sent_for_publication"

// ROSEvent is the JSON payload published for a workflow transition.
type ROSEvent struct {
	ROSID          string    `json:"rosId"`
	Owner          string    `json:"owner"`
	Repository     string    `json:"repository"`
	PullRequestURL string    `json:"pullRequestUrl,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, subject string, evt ROSEvent) error
	Close() error
}

// Subject joins prefix and name with a dot.
func Subject(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func encode(evt ROSEvent) ([]byte, error) {
	b, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return b, nil
}

// noop drops every event. Used when NATS is not configured.
type noop struct{}

// Noop returns a Publisher that discards events.
func Noop() Publisher { return noop{} }

func (noop) Publish(context.Context, string, ROSEvent) error { return nil }
func (noop) Close() error                                    { return nil }
