package sorter

import (
	"context"
	"errors"
	"fmt"
)

// PlacedFile is the outcome of copying one file.
type PlacedFile struct {
	Source *Path
	Folder string
	Err    error
}

// PlacementReport summarises a Place call.
type PlacementReport struct {
	Files []PlacedFile
}

// Copied returns the number of files copied successfully.
func (r *PlacementReport) Copied() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failures returns the files that could not be copied.
func (r *PlacementReport) Failures() []PlacedFile {
	var failed []PlacedFile
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Copier places bucketed files into a Destination.
type Copier struct {
	fsmgr    FilesystemManager
	dest     Destination
	progress Progress
	logger   Logger
}

// NewCopier creates a Copier reading sources through fsmgr.
func NewCopier(fsmgr FilesystemManager, dest Destination, progress Progress, logger Logger) *Copier {
	return &Copier{
		fsmgr:    fsmgr,
		dest:     dest,
		progress: progress,
		logger:   logger,
	}
}

// Place copies every bucket into a folder named after its label and the
// unsorted files into UnsortedFolder, keeping original file names.
//
// A failed copy does not stop the run. Every attempt advances the progress
// counter; failures are returned together as an error wrapping ErrCopyFailed.
// If ctx is cancelled, Place stops before the next file and returns ctx.Err()
// along with the partial report.
func (c *Copier) Place(ctx context.Context, buckets BucketMap, unsorted []*Path) (*PlacementReport, error) {
	report := &PlacementReport{}

	c.progress.Start(buckets.Count() + len(unsorted))

	for _, label := range buckets.Labels() {
		if err := c.placeFolder(ctx, label, buckets[label], report); err != nil {
			return report, err
		}
	}
	if len(unsorted) > 0 {
		if err := c.placeFolder(ctx, UnsortedFolder, unsorted, report); err != nil {
			return report, err
		}
	}

	c.progress.Finish()

	failures := report.Failures()
	if len(failures) == 0 {
		return report, nil
	}

	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = fmt.Errorf("%s -> %s: %w", f.Source.String(), f.Folder, f.Err)
	}
	return report, fmt.Errorf("%w: %d of %d files: %w", ErrCopyFailed, len(failures), len(report.Files), errors.Join(errs...))
}

// placeFolder copies files into one folder. The folder error, if any, is
// recorded against each of its files.
func (c *Copier) placeFolder(ctx context.Context, folder string, files []*Path, report *PlacementReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	folderErr := c.dest.EnsureFolder(ctx, folder)
	if folderErr != nil {
		c.logger.Error("creating folder failed", "folder", folder, "error", folderErr)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := folderErr
		if err == nil {
			err = c.copyOne(ctx, f, folder)
		}
		if err != nil {
			c.logger.Warn("copy failed", "path", f.String(), "folder", folder, "error", err)
		} else {
			c.logger.Debug("file copied", "path", f.String(), "folder", folder)
		}

		report.Files = append(report.Files, PlacedFile{Source: f, Folder: folder, Err: err})
		c.progress.Advance()
	}

	return nil
}

func (c *Copier) copyOne(ctx context.Context, path *Path, folder string) error {
	r, err := c.fsmgr.Open(path)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer r.Close()

	if err := c.dest.Put(ctx, folder, path.Name(), r, path.Size()); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}
	return nil
}
