package journal

import (
	"fmt"
	"os"
	"path/filepath"

	"gallerysort/internal/config"
	"gallerysort/internal/sorter"
)

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
func NewJournalFromConfig(cfg *config.Config) (sorter.Journal, error) {
	switch cfg.Journal.Type {
	case "", "none":
		return sorter.NopJournal{}, nil
	case "memory":
		return NewSQLiteJournal(":memory:")
	case "sqlite":
		path := cfg.JournalPath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
		return NewSQLiteJournal(path)
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Journal.Type)
	}
}
