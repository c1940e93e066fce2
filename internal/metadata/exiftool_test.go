package metadata

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallerysort/internal/sorter"
)

// fakeExifTool writes a shell script that prints output and exits with code.
func fakeExifTool(t *testing.T, output string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "exiftool")
	script := "#!/bin/sh\ncat > /dev/null\ncat <<'OUT'\n" + output + "\nOUT\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestExifToolReader_Check(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		r := NewExifToolReader(filepath.Join(t.TempDir(), "no-such-exiftool"))
		require.ErrorIs(t, r.Check(), sorter.ErrCapabilityMissing)
	})

	t.Run("binary present", func(t *testing.T) {
		r := NewExifToolReader(fakeExifTool(t, "[]", 0))
		require.NoError(t, r.Check())
	})

	t.Run("defaults to exiftool on PATH", func(t *testing.T) {
		assert.Equal(t, "exiftool", NewExifToolReader("").binary)
	})
}

func TestExifToolReader_CreationDate(t *testing.T) {
	t.Run("first available tag wins", func(t *testing.T) {
		out := `[{"SourceFile":"-","CreateDate":"2020:05:01 10:00:00","ModifyDate":"2021:01:01 00:00:00"}]`
		r := NewExifToolReader(fakeExifTool(t, out, 0))

		got, err := r.CreationDate(strings.NewReader("fake video bytes"))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("tool failure", func(t *testing.T) {
		r := NewExifToolReader(fakeExifTool(t, "", 1))
		_, err := r.CreationDate(strings.NewReader("x"))
		require.ErrorIs(t, err, sorter.ErrMetadataUnavailable)
	})
}

func TestParseExifToolOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "DateTimeOriginal preferred",
			out:  `[{"DateTimeOriginal":"2018:07:04 12:30:00","CreateDate":"2019:01:01 00:00:00"}]`,
			want: time.Date(2018, 7, 4, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "falls back past zero dates",
			out:  `[{"DateTimeOriginal":"0000:00:00 00:00:00","ModifyDate":"2017:02:03 04:05:06"}]`,
			want: time.Date(2017, 2, 3, 4, 5, 6, 0, time.UTC),
		},
		{name: "no date tags", out: `[{"SourceFile":"-"}]`, wantErr: true},
		{name: "empty array", out: `[]`, wantErr: true},
		{name: "not json", out: `Error: file format not recognized`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExifToolOutput([]byte(tt.out))
			if tt.wantErr {
				require.ErrorIs(t, err, sorter.ErrMetadataUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
