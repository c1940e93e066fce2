package metadata

import (
	"fmt"

	"gallerysort/internal/config"
	"gallerysort/internal/sorter"
)

// NewReaderFromConfig creates a MetadataReader based on the metadata config type.
// An unknown type is a missing capability.
func NewReaderFromConfig(cfg config.MetadataConfig) (sorter.MetadataReader, error) {
	switch cfg.Type {
	case "", "exif":
		return NewExifReader(), nil
	case "exiftool":
		return NewExifToolReader(cfg.ExifToolPath), nil
	default:
		return nil, fmt.Errorf("%w: unknown metadata reader type %q", sorter.ErrCapabilityMissing, cfg.Type)
	}
}
