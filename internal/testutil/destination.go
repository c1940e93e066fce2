package testutil

import (
	"context"
	"fmt"
	"io"

	"gallerysort/internal/destination"
	"gallerysort/internal/sorter"
)

// NewTestDestination creates a new in-memory destination for testing.
func NewTestDestination() *destination.MemoryDestination {
	return destination.NewMemoryDestination("test")
}

// FailingDestination wraps a destination and fails Put for the listed file names.
type FailingDestination struct {
	sorter.Destination
	FailNames map[string]bool
}

// NewFailingDestination fails every Put of a file called one of names.
func NewFailingDestination(dest sorter.Destination, names ...string) *FailingDestination {
	fail := make(map[string]bool, len(names))
	for _, n := range names {
		fail[n] = true
	}
	return &FailingDestination{Destination: dest, FailNames: fail}
}

func (d *FailingDestination) Put(ctx context.Context, folder, name string, r io.Reader, size int64) error {
	if d.FailNames[name] {
		return fmt.Errorf("simulated write failure for %s", name)
	}
	return d.Destination.Put(ctx, folder, name, r, size)
}
