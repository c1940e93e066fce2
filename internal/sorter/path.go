package sorter

import (
	"io/fs"
	"path/filepath"
)

// Path is a discovered file or directory with cached stat info.
// Paths are created by FilesystemManager.Resolve and FilesystemManager.FindFiles;
// the sorter only ever holds references to them, never their content.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{
		absPath: absPath,
		isDir:   isDir,
		info:    info,
	}
}

// String returns the absolute path. It is the stable identifier of the file.
func (p *Path) String() string {
	return p.absPath
}

// Name returns the display name: the base name of the path.
func (p *Path) Name() string {
	return filepath.Base(p.absPath)
}

// IsDir returns true if this path points to a directory.
func (p *Path) IsDir() bool {
	return p.isDir
}

// Size returns the cached size in bytes, or 0 when no info is available.
func (p *Path) Size() int64 {
	if p.info == nil {
		return 0
	}
	return p.info.Size()
}
