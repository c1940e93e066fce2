package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"gallerysort/internal/sorter"
)

// Manager implements sorter.FilesystemManager on top of an afero.Fs.
// The OS-backed manager is used in production; tests use afero.NewMemMapFs.
type Manager struct {
	fs     afero.Fs
	ignore []string
}

// NewOSFilesystemManager creates a manager that operates on the real filesystem.
// ignore holds extra ignore patterns on top of the defaults.
func NewOSFilesystemManager(ignore []string) *Manager {
	return NewFilesystemManager(afero.NewOsFs(), ignore)
}

// NewFilesystemManager creates a manager over the given afero filesystem.
func NewFilesystemManager(fsys afero.Fs, ignore []string) *Manager {
	return &Manager{
		fs:     fsys,
		ignore: ignore,
	}
}

// Resolve validates a raw path and returns a Path object.
func (m *Manager) Resolve(rawPath string) (*sorter.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := m.fs.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return sorter.NewPath(absPath, info.IsDir(), info), nil
}

// Open opens a file for reading.
func (m *Manager) Open(path *sorter.Path) (io.ReadCloser, error) {
	if path.IsDir() {
		return nil, fmt.Errorf("cannot open directory as file: %s", path.String())
	}
	return m.fs.Open(path.String())
}

// FindFiles discovers regular files under root, recursively and in lexical order.
// Symlinks are not followed. Ignore patterns come from the defaults, the
// manager's configured patterns and an optional ignore file in root.
func (m *Manager) FindFiles(root *sorter.Path) ([]*sorter.Path, error) {
	if !root.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root.String())
	}

	filePatterns, err := ParseIgnoreFile(m.fs, filepath.Join(root.String(), IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns := append(append(append([]string{}, defaultIgnorePatterns...), m.ignore...), filePatterns...)
	matcher := NewIgnoreMatcher(patterns)

	var paths []*sorter.Path
	err = afero.Walk(m.fs, root.String(), func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == root.String() {
			return nil
		}

		rel, err := filepath.Rel(root.String(), p)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", p, err)
		}
		if matcher.Match(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		paths = append(paths, sorter.NewPath(p, false, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return paths, nil
}

// Compile-time check that Manager implements sorter.FilesystemManager interface
var _ sorter.FilesystemManager = (*Manager)(nil)
