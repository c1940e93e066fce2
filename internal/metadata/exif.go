package metadata

import (
	"fmt"
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"gallerysort/internal/sorter"
)

// exifDateFields are tried in order; the first usable one wins.
var exifDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// ExifReader reads capture dates from EXIF data in JPEG and TIFF content.
// It is pure Go and always available.
type ExifReader struct{}

// NewExifReader creates an ExifReader.
func NewExifReader() *ExifReader {
	return &ExifReader{}
}

// CreationDate decodes the EXIF block in r and returns its capture date.
func (e *ExifReader) CreationDate(r io.Reader) (t time.Time, err error) {
	// goexif panics on some truncated or corrupt TIFF structures.
	defer func() {
		if p := recover(); p != nil {
			t, err = time.Time{}, fmt.Errorf("%w: decoding exif: %v", sorter.ErrMetadataUnavailable, p)
		}
	}()

	x, err := exif.Decode(r)
	if x == nil {
		return time.Time{}, fmt.Errorf("%w: decoding exif: %w", sorter.ErrMetadataUnavailable, err)
	}

	for _, field := range exifDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, err := parseExifDate(raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: no date tag", sorter.ErrMetadataUnavailable)
}

// Check always succeeds.
func (e *ExifReader) Check() error {
	return nil
}

// Compile-time check that ExifReader implements sorter.MetadataReader interface
var _ sorter.MetadataReader = (*ExifReader)(nil)
