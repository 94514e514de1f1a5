// Package snapshot provides whole-file durable storage for small state
// snapshots such as the alert file. A save always overwrites the previous
// content; there is no append or merge.
package snapshot

import "context"

// Storage is the backend the alert store persists through.
type Storage interface {
	// Write replaces the content at path with data.
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves the content at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether anything is stored at path.
	Exists(ctx context.Context, path string) (bool, error)
}
