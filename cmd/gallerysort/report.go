package main

import (
	"fmt"
	"strconv"
	"time"

	"gallerysort/internal/console"
	"gallerysort/internal/model"
	"gallerysort/internal/sorter"
)

// printPlan shows the folders a dry run would create.
func printPlan(out *console.Console, report *sorter.Report) {
	out.Table([]string{"Folder", "Files"}, planRows(report))
}

func planRows(report *sorter.Report) [][]string {
	var rows [][]string
	for _, label := range report.Buckets.Labels() {
		rows = append(rows, []string{label, strconv.Itoa(len(report.Buckets[label]))})
	}
	if len(report.Unsorted) > 0 {
		rows = append(rows, []string{sorter.UnsortedFolder, strconv.Itoa(len(report.Unsorted))})
	}
	return rows
}

// printSummary prints the run counters. A nil report prints nothing.
func printSummary(out *console.Console, report *sorter.Report) {
	if report == nil {
		return
	}
	out.Text(summaryLine(report))
}

func summaryLine(report *sorter.Report) string {
	copied, failed := 0, 0
	if report.Placement != nil {
		copied = report.Placement.Copied()
		failed = len(report.Placement.Failures())
	}
	return fmt.Sprintf("%d file(s) found, %d copied into %d folder(s), %d failed, %d unsorted",
		report.Files, copied, len(report.Buckets), failed, len(report.Unsorted))
}

// printFailures lists every file that could not be copied.
func printFailures(out *console.Console, report *sorter.Report) {
	failures := report.Placement.Failures()
	out.Error(fmt.Sprintf("%d file(s) could not be copied", len(failures)))

	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Source.String(), f.Folder, f.Err.Error()})
	}
	out.Table([]string{"Source", "Folder", "Error"}, rows)
}

func runRows(runs []*model.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		duration := ""
		if r.FinishedAt != nil {
			duration = r.FinishedAt.Sub(r.StartedAt).Truncate(time.Millisecond).String()
		}
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			strconv.Itoa(r.FilesTotal),
			strconv.Itoa(r.FilesCopied),
			strconv.Itoa(r.FilesFailed),
			strconv.Itoa(r.FilesUnsorted),
			duration,
			r.Destination,
		})
	}
	return rows
}

func placementRows(placements []*model.Placement) [][]string {
	rows := make([][]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, []string{p.SourcePath, p.Folder, p.Status, p.Error})
	}
	return rows
}
