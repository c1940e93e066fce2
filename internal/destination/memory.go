package destination

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"gallerysort/internal/sorter"
)

// MemoryDestination is an in-memory implementation of the Destination interface.
// It keeps folders and file contents in maps, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryDestination struct {
	name    string
	folders map[string]map[string][]byte // folder -> name -> content
	mu      sync.RWMutex
}

// NewMemoryDestination creates a new in-memory destination with the given name.
func NewMemoryDestination(name string) *MemoryDestination {
	return &MemoryDestination{
		name:    name,
		folders: make(map[string]map[string][]byte),
	}
}

// EnsureFolder creates folder if it does not exist.
func (m *MemoryDestination) EnsureFolder(ctx context.Context, folder string) error {
	if err := validateName("folder", folder); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[folder]; !ok {
		m.folders[folder] = make(map[string][]byte)
	}
	return nil
}

// Put stores the content of r as folder/name, replacing any existing entry.
func (m *MemoryDestination) Put(ctx context.Context, folder, name string, r io.Reader, size int64) error {
	if err := validateName("file", name); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	files, ok := m.folders[folder]
	if !ok {
		return fmt.Errorf("folder not found: %s", folder)
	}
	files[name] = data
	return nil
}

// Describe returns a memory:// URL naming this destination.
func (m *MemoryDestination) Describe() string {
	return "memory://" + m.name
}

// Folders returns the folder names in sorted order.
func (m *MemoryDestination) Folders() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	folders := make([]string, 0, len(m.folders))
	for f := range m.folders {
		folders = append(folders, f)
	}
	slices.Sort(folders)
	return folders
}

// Files returns the file names stored in folder, sorted.
func (m *MemoryDestination) Files(folder string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.folders[folder]))
	for n := range m.folders[folder] {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Get returns the content stored as folder/name.
func (m *MemoryDestination) Get(folder, name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.folders[folder][name]
	return data, ok
}

// Compile-time check that MemoryDestination implements sorter.Destination interface
var _ sorter.Destination = (*MemoryDestination)(nil)
