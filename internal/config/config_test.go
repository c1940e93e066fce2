package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:        "/home/user/.local/share/gallerysort",
		LogDir:         "/home/user/.local/share/gallerysort/log",
		EventThreshold: 12,
		Sources:        []string{"/sdcard/DCIM", "/sdcard/Pictures"},
		Metadata:       MetadataConfig{Type: "exiftool", ExifToolPath: "/usr/bin/exiftool"},
		Journal:        JournalConfig{Type: "sqlite", Path: "/tmp/journal.db"},
		Filesystem: FilesystemConfig{
			Ignore: []string{"*.mov", "Screenshots"},
		},
		S3: S3Config{Region: "eu-central-1", Endpoint: "http://localhost:9000", UsePathStyle: true},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.EventThreshold != 12 {
		t.Errorf("EventThreshold = %d, want 12", got.EventThreshold)
	}
	if len(got.Sources) != 2 || got.Sources[1] != "/sdcard/Pictures" {
		t.Errorf("Sources = %v", got.Sources)
	}
	if got.Metadata != original.Metadata {
		t.Errorf("Metadata = %+v, want %+v", got.Metadata, original.Metadata)
	}
	if got.Journal != original.Journal {
		t.Errorf("Journal = %+v, want %+v", got.Journal, original.Journal)
	}
	if got.S3 != original.S3 {
		t.Errorf("S3 = %+v, want %+v", got.S3, original.S3)
	}
	if len(got.Filesystem.Ignore) != 2 {
		t.Fatalf("len(Filesystem.Ignore) = %d, want 2", len(got.Filesystem.Ignore))
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/gallerysort")

	if cfg.BaseDir != "/data/gallerysort" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/gallerysort")
	}
	if cfg.LogDir != "/data/gallerysort/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/gallerysort/log")
	}
	if cfg.EventThreshold != 7 {
		t.Errorf("EventThreshold = %d, want 7", cfg.EventThreshold)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0] != "./" {
		t.Errorf("Sources = %v, want [./]", cfg.Sources)
	}
	if cfg.Metadata.Type != "exif" {
		t.Errorf("Metadata.Type = %q, want exif", cfg.Metadata.Type)
	}
	if cfg.Journal.Type != "none" {
		t.Errorf("Journal.Type = %q, want none", cfg.Journal.Type)
	}
	if cfg.JournalPath() != "/data/gallerysort/journal.db" {
		t.Errorf("JournalPath() = %q", cfg.JournalPath())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "zero threshold is valid", modify: func(c *Config) { c.EventThreshold = 0 }},
		{
			name:    "negative threshold",
			modify:  func(c *Config) { c.EventThreshold = -1 },
			wantErr: "event_threshold",
		},
		{
			name:    "no sources",
			modify:  func(c *Config) { c.Sources = nil },
			wantErr: "source",
		},
		{
			name:    "unknown journal type",
			modify:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: "unknown journal type",
		},
		{
			name:    "half of s3 credentials",
			modify:  func(c *Config) { c.S3.AccessKeyID = "AKIA" },
			wantErr: "set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/data")
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "gallerysort.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "gallerysort.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		defaults := NewConfig("/data")
		got, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.EventThreshold != DefaultEventThreshold {
			t.Errorf("EventThreshold = %d, want %d", got.EventThreshold, DefaultEventThreshold)
		}
		if got == defaults {
			t.Error("Load() returned the defaults pointer itself")
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gallerysort.toml")
		content := "event_threshold = 2\n\n[journal]\ntype = \"sqlite\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		got, err := Load(path, NewConfig("/data"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.EventThreshold != 2 {
			t.Errorf("EventThreshold = %d, want 2", got.EventThreshold)
		}
		if got.Journal.Type != "sqlite" {
			t.Errorf("Journal.Type = %q, want sqlite", got.Journal.Type)
		}
		if got.Metadata.Type != "exif" {
			t.Errorf("Metadata.Type = %q, want exif", got.Metadata.Type)
		}
		if got.LogDir != "/data/log" {
			t.Errorf("LogDir = %q, want /data/log", got.LogDir)
		}
	})

	t.Run("reads file written by Init", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "gallerysort.toml")
		cfg := NewConfig(dir)
		cfg.EventThreshold = 3
		cfg.Sources = []string{"/sdcard/DCIM", "/sdcard/Pictures"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := Load(path, NewConfig("/elsewhere"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.EventThreshold != 3 {
			t.Errorf("EventThreshold = %d, want 3", got.EventThreshold)
		}
		if len(got.Sources) != 2 || got.Sources[1] != "/sdcard/Pictures" {
			t.Errorf("Sources = %v", got.Sources)
		}
		if got.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gallerysort.toml")
		if err := os.WriteFile(path, []byte("event_threshold = ["), 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := Load(path, NewConfig("/data")); err == nil {
			t.Fatal("Load() expected error")
		}
	})
}
