package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		opID    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			opID:    "op-123",
			level:   slog.LevelInfo,
			message: "file copied",
			want:    "2024-06-15T14:30:45Z\tINFO\top-123\tfile copied\n",
		},
		{
			name:    "debug level",
			opID:    "op-456",
			level:   slog.LevelDebug,
			message: "no date found",
			want:    "2024-06-15T14:30:45Z\tDEBUG\top-456\tno date found\n",
		},
		{
			name:    "with record attrs",
			opID:    "op-789",
			level:   slog.LevelInfo,
			message: "date resolved",
			attrs:   []slog.Attr{slog.String("path", "/photos/IMG_20230101.jpg"), slog.String("source", "filename")},
			want:    "2024-06-15T14:30:45Z\tINFO\top-789\tdate resolved\tpath=/photos/IMG_20230101.jpg\tsource=filename\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &logHandler{w: &buf, opID: tt.opID, level: slog.LevelDebug}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestLogHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &logHandler{w: &buf, opID: "op-1"}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "copier")}).(*logHandler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "copied", 0)
	r.AddAttrs(slog.String("folder", "2024-01"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=copier") {
		t.Errorf("expected pre-set attr component=copier, got: %q", got)
	}
	if !strings.Contains(got, "folder=2024-01") {
		t.Errorf("expected record attr folder=2024-01, got: %q", got)
	}
}

func TestLogHandler_WithAttrs_doesNotMutateOriginal(t *testing.T) {
	var buf bytes.Buffer
	h := &logHandler{w: &buf, opID: "op-1", attrs: []slog.Attr{slog.String("a", "1")}}
	h2 := h.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*logHandler)

	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}
	if len(h2.attrs) != 2 {
		t.Errorf("new handler attrs: got %d, want 2", len(h2.attrs))
	}
}

func TestLogHandler_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		minLevel slog.Level
		level    slog.Level
		want     bool
	}{
		{"debug hidden at info", slog.LevelInfo, slog.LevelDebug, false},
		{"info shown at info", slog.LevelInfo, slog.LevelInfo, true},
		{"error shown at info", slog.LevelInfo, slog.LevelError, true},
		{"debug shown at debug", slog.LevelDebug, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &logHandler{level: tt.minLevel}
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("quiet writes info to the file only", func(t *testing.T) {
		dir := t.TempDir()
		var stderr bytes.Buffer

		logger, f, err := newLogger(dir, "test-op", false, &stderr)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Debug("hidden")
		logger.Info("shown", "n", 1)
		f.Close()

		data, err := os.ReadFile(filepath.Join(dir, LogFileName))
		if err != nil {
			t.Fatalf("reading log file: %v", err)
		}
		got := string(data)
		if strings.Contains(got, "hidden") {
			t.Errorf("debug record written without verbose: %q", got)
		}
		if !strings.Contains(got, "\tINFO\ttest-op\tshown\tn=1\n") {
			t.Errorf("log file = %q, want info record", got)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr.String())
		}
	})

	t.Run("verbose mirrors debug to stderr", func(t *testing.T) {
		dir := t.TempDir()
		var stderr bytes.Buffer

		logger, f, err := newLogger(filepath.Join(dir, "nested", "log"), "test-op", true, &stderr)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		defer f.Close()

		logger.Debug("checking metadata")
		if !strings.Contains(stderr.String(), "\tDEBUG\ttest-op\tchecking metadata\n") {
			t.Errorf("stderr = %q, want debug record", stderr.String())
		}
	})
}
