package sorter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gallerysort/internal/model"
)

// Request describes one sort run.
type Request struct {
	Sources        []string // source directories, scanned recursively in order
	EventThreshold int      // days with more files than this get their own folder
	DryRun         bool     // stop after bucketing
}

// Report is the outcome of a sort run.
type Report struct {
	RunID     string
	Files     int // files enumerated
	Buckets   BucketMap
	Unsorted  []*Path
	Placement *PlacementReport // nil for dry runs
}

// Sorter is the orchestration layer: Enumerate → Index → Bucket → Copy → Report.
// It runs every phase sequentially on the calling goroutine.
type Sorter struct {
	fsmgr    FilesystemManager
	resolver Resolver
	dest     Destination
	journal  Journal
	progress Progress
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewSorter creates a Sorter with the provided dependencies.
// dest may be nil when the Sorter is only used for GetHistory.
func NewSorter(fsmgr FilesystemManager, resolver Resolver, dest Destination, journal Journal, progress Progress, logger Logger, clock Clock, idgen IDGenerator) *Sorter {
	return &Sorter{
		fsmgr:    fsmgr,
		resolver: resolver,
		dest:     dest,
		journal:  journal,
		progress: progress,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Enumerate lists the regular files under each source directory, recursively.
// Sources are visited in order; a file reachable from two sources is listed once.
func (s *Sorter) Enumerate(ctx context.Context, sources []string) ([]*Path, error) {
	seen := make(map[string]bool)
	var files []*Path

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, err := s.fsmgr.Resolve(src)
		if err != nil {
			return nil, fmt.Errorf("resolving source %s: %w", src, err)
		}
		if !root.IsDir() {
			return nil, fmt.Errorf("source is not a directory: %s", root.String())
		}

		found, err := s.fsmgr.FindFiles(root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root.String(), err)
		}

		for _, f := range found {
			if seen[f.String()] {
				continue
			}
			seen[f.String()] = true
			files = append(files, f)
		}
		s.logger.Info("source scanned", "path", root.String(), "files", len(found))
	}

	return files, nil
}

// Run executes the whole pipeline for req.
//
// Copy failures do not stop the run; the returned error wraps ErrCopyFailed and
// the report lists every placement. Any other error aborts the run.
func (s *Sorter) Run(ctx context.Context, req Request) (*Report, error) {
	if s.dest == nil {
		return nil, fmt.Errorf("no destination configured")
	}
	if req.EventThreshold < 0 {
		return nil, fmt.Errorf("event threshold must not be negative: %d", req.EventThreshold)
	}

	run := &model.Run{
		ID:             s.idgen.New(),
		StartedAt:      s.clock.Now(),
		Destination:    s.dest.Describe(),
		Sources:        req.Sources,
		EventThreshold: req.EventThreshold,
		Status:         model.RunRunning,
	}
	if err := s.journal.StartRun(run); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	s.logger.Info("sort started", "run", run.ID, "sources", strings.Join(req.Sources, ","), "destination", run.Destination, "event_threshold", req.EventThreshold)

	report, err := s.run(ctx, req, run)
	run.Status = runStatus(req, err)
	s.finish(run)

	return report, err
}

func (s *Sorter) run(ctx context.Context, req Request, run *model.Run) (*Report, error) {
	report := &Report{RunID: run.ID}

	s.progress.Phase("Getting dates...")
	files, err := s.Enumerate(ctx, req.Sources)
	if err != nil {
		return report, err
	}
	report.Files = len(files)
	run.FilesTotal = len(files)

	index, unsorted, err := NewDateIndexer(s.resolver, s.logger).Index(ctx, files)
	if err != nil {
		return report, err
	}
	report.Unsorted = unsorted
	run.FilesUnsorted = len(unsorted)
	s.logger.Info("dates resolved", "dated", index.Len(), "unsorted", len(unsorted))

	s.progress.Phase("Sorting based on dates...")
	report.Buckets = Bucket(index, req.EventThreshold)
	s.logger.Info("files bucketed", "buckets", len(report.Buckets))

	if req.DryRun {
		return report, nil
	}

	s.progress.Phase("Copying files to destination...")
	placement, err := NewCopier(s.fsmgr, s.dest, s.progress, s.logger).Place(ctx, report.Buckets, unsorted)
	report.Placement = placement
	s.recordPlacements(run, placement)

	return report, err
}

// recordPlacements journals every placement and updates the run counters.
// Journal write failures are logged but never fail the run.
func (s *Sorter) recordPlacements(run *model.Run, placement *PlacementReport) {
	for _, f := range placement.Files {
		p := &model.Placement{
			RunID:      run.ID,
			SourcePath: f.Source.String(),
			Folder:     f.Folder,
			Name:       f.Source.Name(),
			Status:     model.PlacementCopied,
		}
		if f.Err != nil {
			p.Status = model.PlacementFailed
			p.Error = f.Err.Error()
			run.FilesFailed++
		} else {
			run.FilesCopied++
		}
		if err := s.journal.RecordPlacement(p); err != nil {
			s.logger.Warn("journal write failed", "path", p.SourcePath, "error", err)
		}
	}
}

func (s *Sorter) finish(run *model.Run) {
	finished := s.clock.Now()
	run.FinishedAt = &finished
	if err := s.journal.FinishRun(run); err != nil {
		s.logger.Warn("journal write failed", "run", run.ID, "error", err)
	}
	s.logger.Info("sort finished", "run", run.ID, "status", run.Status, "copied", run.FilesCopied, "failed", run.FilesFailed, "unsorted", run.FilesUnsorted)
}

func runStatus(req Request, err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return model.RunCancelled
	case err != nil:
		return model.RunFailed
	case req.DryRun:
		return model.RunDryRun
	default:
		return model.RunSuccess
	}
}
