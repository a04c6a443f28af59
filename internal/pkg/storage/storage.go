package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when no object is stored under the path.
var ErrNotExist = errors.New("stored object does not exist")

// Storage is where uploaded cabin and guest images live.
// Paths are relative, slash separated keys such as "images/ab/<uuid>.jpg".
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error

	// Get returns ErrNotExist (wrapped) when the path is unknown.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for unknown paths.
	Delete(ctx context.Context, path string) error
}
