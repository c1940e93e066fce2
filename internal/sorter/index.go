package sorter

import (
	"context"
	"slices"
)

// DateIndex maps exact capture timestamps to the files sharing them.
// Files under one timestamp keep their insertion order; nothing is deduplicated.
type DateIndex struct {
	files map[int64][]*Path
	count int
}

// NewDateIndex creates an empty index.
func NewDateIndex() *DateIndex {
	return &DateIndex{files: make(map[int64][]*Path)}
}

// Add appends path under ts.
func (i *DateIndex) Add(ts int64, path *Path) {
	i.files[ts] = append(i.files[ts], path)
	i.count++
}

// Timestamps returns the indexed timestamps in ascending order.
func (i *DateIndex) Timestamps() []int64 {
	keys := make([]int64, 0, len(i.files))
	for ts := range i.files {
		keys = append(keys, ts)
	}
	slices.Sort(keys)
	return keys
}

// Files returns the files indexed under ts, in insertion order.
func (i *DateIndex) Files(ts int64) []*Path {
	return i.files[ts]
}

// Len returns the number of indexed files across all timestamps.
func (i *DateIndex) Len() int {
	return i.count
}

// DateIndexer builds a DateIndex from a sequence of files.
type DateIndexer struct {
	resolver Resolver
	logger   Logger
}

// NewDateIndexer creates a DateIndexer using resolver for every file.
func NewDateIndexer(resolver Resolver, logger Logger) *DateIndexer {
	return &DateIndexer{resolver: resolver, logger: logger}
}

// Index resolves each file once. Dated files go into the index under their exact
// timestamp; the rest are returned as the unsorted list, in encounter order.
// ctx is checked before every file.
func (x *DateIndexer) Index(ctx context.Context, files []*Path) (*DateIndex, []*Path, error) {
	index := NewDateIndex()
	var unsorted []*Path

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		res, ok := x.resolver.Resolve(f)
		if !ok {
			unsorted = append(unsorted, f)
			continue
		}

		x.logger.Debug("date resolved", "path", f.String(), "timestamp", res.Timestamp, "source", string(res.Source))
		index.Add(res.Timestamp, f)
	}

	return index, unsorted, nil
}
