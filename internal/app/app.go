package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"gallerysort/internal/config"
	"gallerysort/internal/console"
	"gallerysort/internal/destination"
	"gallerysort/internal/fs"
	"gallerysort/internal/journal"
	"gallerysort/internal/metadata"
	"gallerysort/internal/model"
	"gallerysort/internal/sorter"
)

// Options control the terminal side of an App.
type Options struct {
	Verbose bool      // debug logging, mirrored to Stderr
	Out     io.Writer // console output; os.Stdout when nil
	Stderr  io.Writer // verbose log mirror; os.Stderr when nil
}

// App is the application layer between the CLI and the Sorter.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw strings, and releases the journal and log file on Close.
type App struct {
	cfg     *config.Config
	fsmgr   *fs.Manager
	journal sorter.Journal
	console *console.Console
	logger  sorter.Logger
	op      *Operation
	logFile *os.File
}

// NewApp creates a wired App from the given config.
// command identifies the CLI command being run (e.g. "sort", "history").
// The caller must call Close when done.
func NewApp(cfg *config.Config, command string, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	op := NewOperation(command, sorter.UUIDGenerator{})
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, opts.Verbose, opts.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	j, err := journal.NewJournalFromConfig(cfg)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	return &App{
		cfg:     cfg,
		fsmgr:   fs.NewOSFilesystemManager(cfg.Filesystem.Ignore),
		journal: j,
		console: console.New(opts.Out),
		logger:  &slogAdapter{l: logger},
		op:      op,
		logFile: logFile,
	}, nil
}

// Console returns the console the App reports progress to.
func (a *App) Console() *console.Console {
	return a.console
}

// OperationID returns the ID of this invocation. For sort runs it is also the run ID.
func (a *App) OperationID() string {
	return a.op.ID
}

// Sort runs the pipeline from req.Sources into the destination named by rawDest
// (a local directory or an s3:// URL).
// The metadata reader is checked before anything is read or written; a missing
// capability fails with sorter.ErrCapabilityMissing.
func (a *App) Sort(ctx context.Context, rawDest string, req sorter.Request) (*sorter.Report, error) {
	reader, err := metadata.NewReaderFromConfig(a.cfg.Metadata)
	if err != nil {
		return nil, err
	}
	if err := reader.Check(); err != nil {
		return nil, err
	}

	dest, err := destination.NewDestinationFromConfig(ctx, rawDest, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening destination: %w", err)
	}

	resolver := sorter.NewDateResolver(a.fsmgr, reader, a.logger)
	svc := sorter.NewSorter(a.fsmgr, resolver, dest, a.journal, a.console, a.logger, sorter.RealClock{}, a.op)
	return svc.Run(ctx, req)
}

// History returns the most recent journaled runs, newest first.
func (a *App) History(limit int) ([]*model.Run, error) {
	return a.historyService().GetHistory(limit)
}

// RunPlacements returns the placements journaled for one run.
func (a *App) RunPlacements(runID string) ([]*model.Placement, error) {
	return a.historyService().GetRunPlacements(runID)
}

func (a *App) historyService() *sorter.Sorter {
	return sorter.NewSorter(a.fsmgr, nil, nil, a.journal, sorter.NopProgress{}, a.logger, sorter.RealClock{}, a.op)
}

// Close releases the journal and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.journal.Close(); err != nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
