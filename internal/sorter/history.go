package sorter

import (
	"fmt"

	"gallerysort/internal/model"
)

// GetHistory returns the most recent sort runs, ordered newest first.
func (s *Sorter) GetHistory(limit int) ([]*model.Run, error) {
	runs, err := s.journal.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// GetRunPlacements returns where each file of a run was placed.
func (s *Sorter) GetRunPlacements(runID string) ([]*model.Placement, error) {
	placements, err := s.journal.ListPlacements(runID)
	if err != nil {
		return nil, fmt.Errorf("listing placements for run %s: %w", runID, err)
	}
	return placements, nil
}
