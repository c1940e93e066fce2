package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"gallerysort/internal/sorter"
)

// FileSystemDestination writes sorted files into a directory tree:
//
//	<root>/
//	  2023-01-01/
//	    IMG_20230101_101500.jpg
//	  2023-02/
//	    ...
//	  unsorted/
//	    ...
type FileSystemDestination struct {
	fs   afero.Fs
	root string
}

// NewOSDestination creates a destination rooted at a directory on the real filesystem.
func NewOSDestination(root string) (*FileSystemDestination, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving destination path: %w", err)
	}
	return NewFileSystemDestination(afero.NewOsFs(), abs)
}

// NewFileSystemDestination creates a destination rooted at root on fsys.
// Nothing is created until the first EnsureFolder call; an existing root must
// be a directory.
func NewFileSystemDestination(fsys afero.Fs, root string) (*FileSystemDestination, error) {
	info, err := fsys.Stat(root)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("destination not accessible: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("destination is not a directory: %s", root)
	}

	return &FileSystemDestination{
		fs:   fsys,
		root: root,
	}, nil
}

// EnsureFolder creates <root>/<folder>, and the root itself, if they do not exist.
func (d *FileSystemDestination) EnsureFolder(ctx context.Context, folder string) error {
	if err := validateName("folder", folder); err != nil {
		return err
	}
	if err := d.fs.MkdirAll(filepath.Join(d.root, folder), 0755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

// Put writes r to <root>/<folder>/<name>, replacing any existing file.
// The folder must already exist.
func (d *FileSystemDestination) Put(ctx context.Context, folder, name string, r io.Reader, size int64) error {
	if err := validateName("folder", folder); err != nil {
		return err
	}
	if err := validateName("file", name); err != nil {
		return err
	}
	return d.writeFile(filepath.Join(d.root, folder, name), r, size)
}

// Describe returns the destination root directory.
func (d *FileSystemDestination) Describe() string {
	return d.root
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (d *FileSystemDestination) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := afero.TempFile(d.fs, filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			d.fs.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := d.fs.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemDestination implements sorter.Destination interface
var _ sorter.Destination = (*FileSystemDestination)(nil)
