package app

import "gallerysort/internal/sorter"

// Operation identifies one CLI invocation. Its ID tags every log line and,
// for sort runs, is also the key of the run in the journal.
type Operation struct {
	ID      string
	Command string // e.g. "sort", "history"
}

// NewOperation creates an operation for command with a fresh ID from idgen.
func NewOperation(command string, idgen sorter.IDGenerator) *Operation {
	return &Operation{
		ID:      idgen.New(),
		Command: command,
	}
}

// New returns the operation ID, so an Operation can act as the IDGenerator of
// the Sorter it drives.
func (op *Operation) New() string {
	return op.ID
}

var _ sorter.IDGenerator = (*Operation)(nil)
