package sorter

import (
	"io"
	"time"
)

// MetadataReader extracts an embedded creation date from file content.
type MetadataReader interface {
	// CreationDate returns the capture date recorded in the content read from r.
	// Files without a usable date return an error wrapping ErrMetadataUnavailable.
	CreationDate(r io.Reader) (time.Time, error)

	// Check verifies that the reader can run in this environment.
	// It returns an error wrapping ErrCapabilityMissing when it cannot.
	Check() error
}
