package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"gallerysort/internal/fs"
)

// MemFilesystem is an in-memory source tree backed by afero.MemMapFs,
// exposed through the production FilesystemManager.
type MemFilesystem struct {
	*fs.Manager
	t  *testing.T
	Fs afero.Fs
}

// NewMemFilesystem creates an empty in-memory filesystem with the default ignore rules.
func NewMemFilesystem(t *testing.T) *MemFilesystem {
	t.Helper()
	memfs := afero.NewMemMapFs()
	return &MemFilesystem{
		Manager: fs.NewFilesystemManager(memfs, nil),
		t:       t,
		Fs:      memfs,
	}
}

// AddFile creates a file, and any missing parent directories, with content.
func (m *MemFilesystem) AddFile(path string, content []byte) {
	m.t.Helper()
	if err := afero.WriteFile(m.Fs, path, content, 0644); err != nil {
		m.t.Fatalf("adding file %s: %v", path, err)
	}
}

// AddFileWithModTime creates a file and sets its modification time.
func (m *MemFilesystem) AddFileWithModTime(path string, content []byte, modTime time.Time) {
	m.t.Helper()
	m.AddFile(path, content)
	if err := m.Fs.Chtimes(path, modTime, modTime); err != nil {
		m.t.Fatalf("setting times on %s: %v", path, err)
	}
}

// AddDirectory creates a directory and any missing parents.
func (m *MemFilesystem) AddDirectory(path string) {
	m.t.Helper()
	if err := m.Fs.MkdirAll(filepath.Clean(path), 0755); err != nil {
		m.t.Fatalf("adding directory %s: %v", path, err)
	}
}

// Remove deletes a file, simulating a source that vanished mid-run.
func (m *MemFilesystem) Remove(path string) {
	m.t.Helper()
	if err := m.Fs.Remove(path); err != nil {
		m.t.Fatalf("removing %s: %v", path, err)
	}
}
