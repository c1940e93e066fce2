package sorter

// Progress receives pipeline phase changes and per-file copy progress.
type Progress interface {
	// Phase announces the start of a pipeline phase.
	Phase(msg string)

	// Start begins a progress counter that will advance total times.
	Start(total int)

	// Advance moves the counter forward by one.
	Advance()

	// Finish completes the counter.
	Finish()
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Phase(string) {}
func (NopProgress) Start(int)    {}
func (NopProgress) Advance()     {}
func (NopProgress) Finish()      {}
