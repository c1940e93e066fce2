package testutil

import "gallerysort/internal/sorter"

// RecordingProgress records every progress call for assertions.
type RecordingProgress struct {
	Phases   []string
	Total    int
	Advanced int
	Finished bool
}

func (p *RecordingProgress) Phase(msg string) { p.Phases = append(p.Phases, msg) }
func (p *RecordingProgress) Start(total int)  { p.Total = total }
func (p *RecordingProgress) Advance()         { p.Advanced++ }
func (p *RecordingProgress) Finish()          { p.Finished = true }

var _ sorter.Progress = (*RecordingProgress)(nil)
