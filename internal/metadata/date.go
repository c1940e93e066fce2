// Package metadata reads capture dates embedded in media files.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"gallerysort/internal/sorter"
)

// exifDateLayout is the EXIF date/time format. The value carries no zone and
// is read as UTC.
const exifDateLayout = "2006:01:02 15:04:05"

// parseExifDate parses an EXIF date/time value. Trailing NULs, subseconds and
// zone suffixes written by some tools are ignored. All-zero dates are treated
// as missing.
func parseExifDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if len(s) < len(exifDateLayout) {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", sorter.ErrMetadataUnavailable, raw)
	}
	s = s[:len(exifDateLayout)]
	if strings.HasPrefix(s, "0000") {
		return time.Time{}, fmt.Errorf("%w: empty date %q", sorter.ErrMetadataUnavailable, raw)
	}

	t, err := time.ParseInLocation(exifDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", sorter.ErrMetadataUnavailable, err)
	}
	return t, nil
}
