package destination

import (
	"context"
	"strings"

	"gallerysort/internal/config"
	"gallerysort/internal/sorter"
)

const memoryScheme = "memory://"

// NewDestinationFromConfig creates a Destination for the raw destination argument.
// s3://bucket/prefix selects S3, memory://name an in-memory destination and
// anything else is a local directory.
func NewDestinationFromConfig(ctx context.Context, raw string, cfg *config.Config) (sorter.Destination, error) {
	switch {
	case strings.HasPrefix(raw, S3Scheme):
		bucket, prefix, err := ParseS3URL(raw)
		if err != nil {
			return nil, err
		}
		return NewS3Destination(ctx, bucket, prefix, cfg.S3)
	case strings.HasPrefix(raw, memoryScheme):
		return NewMemoryDestination(strings.TrimPrefix(raw, memoryScheme)), nil
	default:
		return NewOSDestination(raw)
	}
}
