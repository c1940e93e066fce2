package testutil

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gallerysort/internal/sorter"
)

// MetadataPrefix marks file content that StubMetadataReader understands:
// "exif:2021-03-10T08:00:00Z" carries that capture date.
const MetadataPrefix = "exif:"

// StubMetadataReader reads capture dates from file content written with
// WithMetadata instead of decoding real image formats.
type StubMetadataReader struct {
	CheckErr error
	Calls    int
}

// NewStubMetadataReader creates a reader that passes Check.
func NewStubMetadataReader() *StubMetadataReader {
	return &StubMetadataReader{}
}

// WithMetadata returns file content carrying capture date t.
func WithMetadata(t time.Time) []byte {
	return []byte(MetadataPrefix + t.UTC().Format(time.RFC3339))
}

func (r *StubMetadataReader) CreationDate(rd io.Reader) (time.Time, error) {
	r.Calls++
	data, err := io.ReadAll(rd)
	if err != nil {
		return time.Time{}, err
	}

	raw, ok := strings.CutPrefix(string(data), MetadataPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no stub metadata", sorter.ErrMetadataUnavailable)
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", sorter.ErrMetadataUnavailable, err)
	}
	return t, nil
}

func (r *StubMetadataReader) Check() error {
	return r.CheckErr
}

var _ sorter.MetadataReader = (*StubMetadataReader)(nil)
