package sorter

import (
	"slices"
	"time"
)

// UnsortedFolder receives every file without a resolvable capture date.
const UnsortedFolder = "unsorted"

const (
	dayLabelLayout   = "2006-01-02"
	monthLabelLayout = "2006-01"
)

// BucketMap maps folder labels to the files placed in them.
type BucketMap map[string][]*Path

// Labels returns the bucket labels in ascending order.
func (b BucketMap) Labels() []string {
	labels := make([]string, 0, len(b))
	for label := range b {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// Count returns the number of files across all buckets.
func (b BucketMap) Count() int {
	n := 0
	for _, files := range b {
		n += len(files)
	}
	return n
}

// Bucket groups indexed files into folders. A timestamp shared by more than
// eventThreshold files is an event and gets its own YYYY-MM-DD folder; all
// other files accumulate in their YYYY-MM folder. Labels use UTC.
//
// Bucket does not modify index and returns a fresh map on every call.
func Bucket(index *DateIndex, eventThreshold int) BucketMap {
	buckets := make(BucketMap)

	for _, ts := range index.Timestamps() {
		files := index.Files(ts)
		t := time.Unix(ts, 0).UTC()

		label := t.Format(monthLabelLayout)
		if len(files) > eventThreshold {
			label = t.Format(dayLabelLayout)
		}

		buckets[label] = append(buckets[label], files...)
	}

	return buckets
}
