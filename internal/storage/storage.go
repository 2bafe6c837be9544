// Package storage persists uploaded image files and hands back references
// suitable for a Project's imageUrl field.
//
// Two backends exist: Local writes to a directory the server exposes at
// /uploads/, S3 puts objects in a bucket and returns absolute URLs. The
// upload processor and the project service only see the FileStore
// interface, so the backend is a pure configuration choice.
package storage

import (
	"context"
	"io"
)

// FileStore saves uploaded files and deletes previously saved ones.
type FileStore interface {
	// Save persists the file content and returns a reference usable as an
	// imageUrl: a site-relative path for local storage, an absolute URL
	// for remote storage.
	Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error)

	// Delete removes a previously saved file, identified by the reference
	// Save returned. References the backend does not own (absolute URLs
	// handed to the local store, for example) are ignored without error:
	// the application never deletes images it didn't store itself.
	Delete(ctx context.Context, ref string) error
}
