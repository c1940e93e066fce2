package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"gallerysort/internal/sorter"
)

const defaultExifToolBinary = "exiftool"

// exifToolTags are requested from exiftool and tried in this order.
var exifToolTags = []string{"DateTimeOriginal", "CreateDate", "ModifyDate"}

// ExifToolReader reads capture dates by piping file content through the
// exiftool binary. It understands far more formats than ExifReader (HEIC,
// MP4, RAW) at the cost of one process per file.
type ExifToolReader struct {
	binary string
}

// NewExifToolReader creates a reader running binary, or "exiftool" from PATH
// when binary is empty.
func NewExifToolReader(binary string) *ExifToolReader {
	if binary == "" {
		binary = defaultExifToolBinary
	}
	return &ExifToolReader{binary: binary}
}

// Check verifies that the exiftool binary can be found.
func (e *ExifToolReader) Check() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("%w: %s not found: %w", sorter.ErrCapabilityMissing, e.binary, err)
	}
	return nil
}

// CreationDate runs exiftool on the content of r and returns the first date tag found.
func (e *ExifToolReader) CreationDate(r io.Reader) (time.Time, error) {
	args := []string{"-json", "-fast"}
	for _, tag := range exifToolTags {
		args = append(args, "-"+tag)
	}
	args = append(args, "-")

	cmd := exec.Command(e.binary, args...)
	cmd.Stdin = r
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return time.Time{}, fmt.Errorf("%w: running %s: %w: %s", sorter.ErrMetadataUnavailable, e.binary, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return parseExifToolOutput(stdout.Bytes())
}

// parseExifToolOutput extracts the capture date from exiftool -json output.
func parseExifToolOutput(out []byte) (time.Time, error) {
	var records []map[string]any
	if err := json.Unmarshal(out, &records); err != nil {
		return time.Time{}, fmt.Errorf("%w: decoding exiftool output: %w", sorter.ErrMetadataUnavailable, err)
	}
	if len(records) == 0 {
		return time.Time{}, fmt.Errorf("%w: empty exiftool output", sorter.ErrMetadataUnavailable)
	}

	for _, tag := range exifToolTags {
		raw, ok := records[0][tag].(string)
		if !ok {
			continue
		}
		if t, err := parseExifDate(raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: no date tag", sorter.ErrMetadataUnavailable)
}

// Compile-time check that ExifToolReader implements sorter.MetadataReader interface
var _ sorter.MetadataReader = (*ExifToolReader)(nil)
