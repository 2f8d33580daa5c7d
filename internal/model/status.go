package model

// ProcessingStatus is the outcome of creating or updating a ROS.
type ProcessingStatus string

const (
	ProcessingCreatedROS           ProcessingStatus = "CreatedROS"
	ProcessingUpdatedROS           ProcessingStatus = "UpdatedROS"
	ProcessingROSNotValid          ProcessingStatus = "ROSNotValid"
	ProcessingEncryptionFailed     ProcessingStatus = "EncryptionFailed"
	ProcessingCouldNotCreateBranch ProcessingStatus = "CouldNotCreateBranch"
	ProcessingErrorWhenUpdatingROS ProcessingStatus = "ErrorWhenUpdatingROS"
)

// Succeeded reports whether s belongs to the success set {CreatedROS, UpdatedROS}.
func (s ProcessingStatus) Succeeded() bool {
	return s == ProcessingCreatedROS || s == ProcessingUpdatedROS
}

// SimpleStatus is the binary outcome of read and publish operations.
type SimpleStatus string

const (
	SimpleSuccess SimpleStatus = "Success"
	SimpleFailure SimpleStatus = "Failure"
)

// ContentStatus is the per-item outcome when fetching several ROSes.
type ContentStatus string

const (
	ContentSuccess          ContentStatus = "Success"
	ContentFileNotFound     ContentStatus = "FileNotFound"
	ContentDecryptionFailed ContentStatus = "DecryptionFailed"
	ContentFailure          ContentStatus = "Failure"
)

// ROSState is where a ROS sits in the publication workflow.
type ROSState string

const (
	// StateDraft: committed on its own branch, no pull request.
	StateDraft ROSState = "Draft"
	// StateSentForApproval: an open pull request targets the default branch.
	StateSentForApproval ROSState = "SentForApproval"
	// StatePublished: present on the default branch.
	StatePublished ROSState = "Published"
)
