package sorter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gallerysort/internal/sorter"
	"gallerysort/internal/testutil"
)

func resolveAll(t *testing.T, fsys *testutil.MemFilesystem, names ...string) []*sorter.Path {
	t.Helper()
	ps := make([]*sorter.Path, len(names))
	for i, n := range names {
		p, err := fsys.Resolve(n)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", n, err)
		}
		ps[i] = p
	}
	return ps
}

func TestCopier_Place(t *testing.T) {
	fsys := testutil.NewMemFilesystem(t)
	fsys.AddFile("/photos/a.jpg", []byte("aaa"))
	fsys.AddFile("/photos/b.jpg", []byte("bb"))
	fsys.AddFile("/photos/c.txt", []byte("c"))
	ps := resolveAll(t, fsys, "/photos/a.jpg", "/photos/b.jpg", "/photos/c.txt")

	dest := testutil.NewTestDestination()
	progress := &testutil.RecordingProgress{}
	copier := sorter.NewCopier(fsys, dest, progress, sorter.NewNopLogger())

	buckets := sorter.BucketMap{
		"2023-01-01": {ps[0]},
		"2023-02":    {ps[1]},
	}
	report, err := copier.Place(context.Background(), buckets, []*sorter.Path{ps[2]})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	want := map[string]map[string]string{
		"2023-01-01": {"a.jpg": "aaa"},
		"2023-02":    {"b.jpg": "bb"},
		"unsorted":   {"c.txt": "c"},
	}
	for folder, files := range want {
		for name, content := range files {
			got, ok := dest.Get(folder, name)
			if !ok {
				t.Errorf("%s/%s not copied", folder, name)
				continue
			}
			if string(got) != content {
				t.Errorf("%s/%s = %q, want %q", folder, name, got, content)
			}
		}
	}

	if report.Copied() != 3 || len(report.Failures()) != 0 {
		t.Errorf("report copied=%d failures=%d, want 3/0", report.Copied(), len(report.Failures()))
	}
	if progress.Total != 3 || progress.Advanced != 3 || !progress.Finished {
		t.Errorf("progress = %+v, want total 3, advanced 3, finished", progress)
	}

	// Labels first in sorted order, then unsorted
	var order []string
	for _, f := range report.Files {
		order = append(order, f.Folder)
	}
	if strings.Join(order, ",") != "2023-01-01,2023-02,unsorted" {
		t.Errorf("placement order = %v", order)
	}
}

func TestCopier_NoUnsortedFolderWhenEmpty(t *testing.T) {
	fsys := testutil.NewMemFilesystem(t)
	fsys.AddFile("/photos/a.jpg", []byte("a"))
	ps := resolveAll(t, fsys, "/photos/a.jpg")

	dest := testutil.NewTestDestination()
	copier := sorter.NewCopier(fsys, dest, sorter.NopProgress{}, sorter.NewNopLogger())

	if _, err := copier.Place(context.Background(), sorter.BucketMap{"2023-01": ps}, nil); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if folders := dest.Folders(); len(folders) != 1 || folders[0] != "2023-01" {
		t.Errorf("Folders() = %v, want [2023-01]", folders)
	}
}

func TestCopier_FailuresContinue(t *testing.T) {
	fsys := testutil.NewMemFilesystem(t)
	fsys.AddFile("/photos/a.jpg", []byte("a"))
	fsys.AddFile("/photos/bad.jpg", []byte("b"))
	fsys.AddFile("/photos/c.jpg", []byte("c"))
	fsys.AddFile("/photos/gone.jpg", []byte("g"))
	ps := resolveAll(t, fsys, "/photos/a.jpg", "/photos/bad.jpg", "/photos/c.jpg", "/photos/gone.jpg")
	fsys.Remove("/photos/gone.jpg")

	mem := testutil.NewTestDestination()
	dest := testutil.NewFailingDestination(mem, "bad.jpg")
	progress := &testutil.RecordingProgress{}
	copier := sorter.NewCopier(fsys, dest, progress, sorter.NewNopLogger())

	report, err := copier.Place(context.Background(), sorter.BucketMap{"2023-01": ps}, nil)
	if !errors.Is(err, sorter.ErrCopyFailed) {
		t.Fatalf("Place() error = %v, want ErrCopyFailed", err)
	}
	if !strings.Contains(err.Error(), "bad.jpg") || !strings.Contains(err.Error(), "gone.jpg") {
		t.Errorf("error does not name both failed files: %v", err)
	}

	if report.Copied() != 2 {
		t.Errorf("Copied() = %d, want 2", report.Copied())
	}
	if len(report.Failures()) != 2 {
		t.Errorf("len(Failures()) = %d, want 2", len(report.Failures()))
	}
	if progress.Advanced != 4 {
		t.Errorf("progress advanced %d times, want 4", progress.Advanced)
	}
	if _, ok := mem.Get("2023-01", "c.jpg"); !ok {
		t.Error("file after the failure was not copied")
	}
}

func TestCopier_Cancelled(t *testing.T) {
	fsys := testutil.NewMemFilesystem(t)
	fsys.AddFile("/photos/a.jpg", []byte("a"))
	ps := resolveAll(t, fsys, "/photos/a.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := testutil.NewTestDestination()
	copier := sorter.NewCopier(fsys, dest, sorter.NopProgress{}, sorter.NewNopLogger())
	report, err := copier.Place(ctx, sorter.BucketMap{"2023-01": ps}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Place() error = %v, want context.Canceled", err)
	}
	if len(report.Files) != 0 {
		t.Errorf("report has %d files after cancellation, want 0", len(report.Files))
	}
}
