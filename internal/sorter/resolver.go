package sorter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// filenameDatePattern matches an 8-digit YYYYMMDD run with a 20xx year.
// Months are limited to 01-12 and days to 01-31; nothing else is validated.
var filenameDatePattern = regexp.MustCompile(`(20[0-9][0-9])(0[1-9]|1[012])(0[1-9]|[12][0-9]|3[01])`)

// DateSource tells where a resolved capture date came from.
type DateSource string

const (
	DateSourceFilename DateSource = "filename"
	DateSourceMetadata DateSource = "metadata"
)

// Resolution is a resolved capture timestamp, in seconds since the epoch (UTC).
type Resolution struct {
	Timestamp int64
	Source    DateSource
}

// Resolver produces an optional capture timestamp for a file.
type Resolver interface {
	Resolve(path *Path) (Resolution, bool)
}

// FilenameDate extracts the first YYYYMMDD date from a file name, at midnight UTC.
// Day numbers past the end of the month roll over into the next month
// (20230231 is 2023-03-03), matching the range-only validation of the pattern.
func FilenameDate(name string) (time.Time, bool) {
	m := filenameDatePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}

	// The pattern guarantees all three groups are digits.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// DateResolver resolves capture dates from the file name, falling back to
// embedded metadata. It holds no per-file state and is safe to reuse.
type DateResolver struct {
	fsmgr  FilesystemManager
	reader MetadataReader
	logger Logger
}

var _ Resolver = (*DateResolver)(nil)

// NewDateResolver creates a DateResolver reading file content through fsmgr.
func NewDateResolver(fsmgr FilesystemManager, reader MetadataReader, logger Logger) *DateResolver {
	return &DateResolver{
		fsmgr:  fsmgr,
		reader: reader,
		logger: logger,
	}
}

// Resolve returns the capture timestamp of path, or false if none can be found.
// Unreadable files and files without metadata are not errors: they resolve to none.
func (r *DateResolver) Resolve(path *Path) (Resolution, bool) {
	if t, ok := FilenameDate(path.Name()); ok {
		return Resolution{Timestamp: t.Unix(), Source: DateSourceFilename}, true
	}

	t, err := r.metadataDate(path)
	if err != nil {
		r.logger.Debug("no capture date", "path", path.String(), "reason", err)
		return Resolution{}, false
	}

	return Resolution{Timestamp: t.Unix(), Source: DateSourceMetadata}, true
}

func (r *DateResolver) metadataDate(path *Path) (time.Time, error) {
	f, err := r.fsmgr.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	t, err := r.reader.CreationDate(f)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
