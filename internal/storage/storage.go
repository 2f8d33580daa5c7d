// Package storage archives encrypted ROS snapshots in an S3-compatible object store.
// Implementations must avoid using local disk and rely on streaming I/O only.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, otherwise -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the write side of an S3-compatible object store.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}

// SnapshotKey is the object key for a snapshot of ROS id taken at ts.
// Example: snapshots/kartverket/ros/ros-abcde/1714557600.ros.enc
func SnapshotKey(owner, repo, id string, ts time.Time) string {
	return path.Join("snapshots", owner, repo, id, fmt.Sprintf("%d.ros.enc", ts.Unix()))
}
