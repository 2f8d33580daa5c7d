package repository

import (
	"context"

	"rosapi/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// RecordRepository persists the local bookkeeping row for each ROS.
// Persistence only; no business logic.
type RecordRepository interface {
	// Upsert inserts the record or overwrites branch, state and updated_at of an existing one.
	Upsert(ctx context.Context, rec *model.ROSRecord) error

	// Get returns the record for (owner, repository, id). It returns sql.ErrNoRows when absent.
	Get(ctx context.Context, owner, repository, id string) (*model.ROSRecord, error)
}
