package model

import "time"

// Run statuses.
const (
	RunRunning   = "running"
	RunSuccess   = "success"
	RunFailed    = "failed"
	RunDryRun    = "dry-run"
	RunCancelled = "cancelled"
)

// Placement statuses.
const (
	PlacementCopied = "copied"
	PlacementFailed = "failed"
)

// Run is one invocation of the sort pipeline.
type Run struct {
	ID             string // UUID
	StartedAt      time.Time
	FinishedAt     *time.Time // nil while running
	Destination    string     // Destination.Describe()
	Sources        []string   // source directories as given
	EventThreshold int
	Status         string
	FilesTotal     int // enumerated files
	FilesCopied    int
	FilesFailed    int
	FilesUnsorted  int
}

// Placement is the outcome of copying one source file into a destination folder.
type Placement struct {
	RunID      string
	SourcePath string // absolute source path
	Folder     string // bucket label or "unsorted"
	Name       string // file name inside the folder
	Status     string
	Error      string // empty unless Status is PlacementFailed
}
