package sorter

import (
	"context"
	"io"
)

// Destination is the root that sorted files are copied into.
// Folders are single path segments named after bucket labels (or "unsorted").
type Destination interface {
	// EnsureFolder makes sure the named folder exists under the destination root.
	EnsureFolder(ctx context.Context, folder string) error

	// Put stores the content read from r as folder/name, replacing any existing file.
	// size is the number of bytes that will be read from r.
	Put(ctx context.Context, folder, name string, r io.Reader, size int64) error

	// Describe returns a human-readable location, e.g. "/photos/sorted" or "s3://bucket/prefix".
	Describe() string
}
