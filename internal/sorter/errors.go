package sorter

import "errors"

var (
	// ErrCapabilityMissing means the metadata reader cannot run here. Fatal at startup.
	ErrCapabilityMissing = errors.New("metadata extraction capability missing")

	// ErrMetadataUnavailable means a file carries no readable creation date.
	ErrMetadataUnavailable = errors.New("no creation date in metadata")

	// ErrCopyFailed wraps the aggregated per-file copy failures of a run.
	ErrCopyFailed = errors.New("copy failed")
)
