package model

import "time"

// ROSWrapper is the client payload for create and update.
// ROS holds the assessment as a JSON document; it is stored verbatim (encrypted).
type ROSWrapper struct {
	ROS           string `json:"ros"`
	SchemaVersion string `json:"schemaVersion,omitempty"`
}

// ROSContent is the subset of a ROS document that is checked before it is stored.
type ROSContent struct {
	SchemaVersion string        `json:"schemaVersion" validate:"required"`
	Title         string        `json:"title" validate:"required,max=200"`
	Scope         string        `json:"scope"`
	Scenarios     []ROSScenario `json:"scenarios" validate:"dive"`
}

// ROSScenario is a single risk scenario within a ROS.
type ROSScenario struct {
	Title string  `json:"title" validate:"required"`
	Risk  ROSRisk `json:"risk"`
}

// ROSRisk scores a scenario. Both factors are on a 1-5 scale.
type ROSRisk struct {
	Probability int `json:"probability" validate:"min=1,max=5"`
	Consequence int `json:"consequence" validate:"min=1,max=5"`
}

// ROSResult is one item of the "fetch all" response.
type ROSResult struct {
	ID      string        `json:"id"`
	Status  ContentStatus `json:"status"`
	State   ROSState      `json:"rosStatus,omitempty"`
	Content string        `json:"rosContent,omitempty"`
}

// ProcessROSResult is returned by create and update.
type ProcessROSResult struct {
	ROSID         string           `json:"rosId"`
	Status        ProcessingStatus `json:"status"`
	StatusMessage string           `json:"statusMessage"`
}

// ROSIdentifier names a ROS and where it is in the workflow.
type ROSIdentifier struct {
	ID    string   `json:"id"`
	State ROSState `json:"status"`
}

// ROSIdentifiersResult lists the drafts that have been sent to publication.
type ROSIdentifiersResult struct {
	IDs           []ROSIdentifier `json:"rosIds"`
	Status        SimpleStatus    `json:"status"`
	StatusMessage string          `json:"statusMessage"`
}

// PullRequestObject describes the pull request opened by a publish.
type PullRequestObject struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	OpenedBy  string    `json:"openedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ROSPublishedObjectResult is returned by publish.
type ROSPublishedObjectResult struct {
	PendingPullRequest *PullRequestObject `json:"pendingPR,omitempty"`
	Status             SimpleStatus       `json:"status"`
	StatusMessage      string             `json:"statusMessage"`
}

// ROSRecord is the local bookkeeping row kept for every ROS this service has written.
// This is a pure domain model with no database-specific dependencies or tags.
type ROSRecord struct {
	Owner      string    `json:"owner"`
	Repository string    `json:"repository"`
	ID         string    `json:"id"`
	Branch     string    `json:"branch"`
	State      ROSState  `json:"state"`
	UpdatedAt  time.Time `json:"updated_at"`
}
