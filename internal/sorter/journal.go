package sorter

import "gallerysort/internal/model"

// Journal records sort runs and the placement of every file.
// The default implementation is NopJournal: nothing is persisted between runs
// unless a journal is configured explicitly.
type Journal interface {
	// StartRun records a new run with status "running".
	StartRun(run *model.Run) error

	// RecordPlacement records the outcome of copying one file.
	RecordPlacement(p *model.Placement) error

	// FinishRun stores the final status, counters and finish time of a run.
	FinishRun(run *model.Run) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*model.Run, error)

	// ListPlacements returns the placements recorded for a run, in copy order.
	ListPlacements(runID string) ([]*model.Placement, error)

	// Close releases the underlying storage.
	Close() error
}

// NopJournal is a Journal that records nothing.
type NopJournal struct{}

func (NopJournal) StartRun(*model.Run) error              { return nil }
func (NopJournal) RecordPlacement(*model.Placement) error { return nil }
func (NopJournal) FinishRun(*model.Run) error             { return nil }
func (NopJournal) ListRuns(int) ([]*model.Run, error)     { return nil, nil }
func (NopJournal) Close() error                           { return nil }

func (NopJournal) ListPlacements(string) ([]*model.Placement, error) { return nil, nil }
