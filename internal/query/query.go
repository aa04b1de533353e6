package query

import (
	"sort"
	"strings"

	"ecoacustica/internal/records"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	SortByDate SortKey = "date"
	SortByName SortKey = "name"
	SortBySize SortKey = "size"
)

// ParseSortKey converts a string into a known SortKey.
func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortByDate, "":
		return SortByDate, true
	case SortByName:
		return SortByName, true
	case SortBySize:
		return SortBySize, true
	default:
		return "", false
	}
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection converts a string into a known Direction.
func ParseDirection(value string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(value))) {
	case Ascending:
		return Ascending, true
	case Descending, "":
		return Descending, true
	default:
		return "", false
	}
}

// StatusAll passes records of every status through the filter.
const StatusAll = "all"

// Options describes one query over a collection.
type Options struct {
	// Search is matched case-insensitively as a substring of the file name,
	// any tag, or the notes. Empty matches everything.
	Search string
	// Status is StatusAll or one of the record statuses.
	Status string
	SortBy SortKey
	Order  Direction
}

// Apply filters then sorts the collection, returning a fresh slice. The sort
// is stable: ties keep their original collection order.
func Apply(collection records.Collection, opts Options) records.Collection {
	if opts.SortBy == "" {
		opts.SortBy = SortByDate
	}
	if opts.Order == "" {
		opts.Order = Descending
	}

	term := strings.ToLower(strings.TrimSpace(opts.Search))
	status := strings.ToLower(strings.TrimSpace(opts.Status))
	if status == "" {
		status = StatusAll
	}

	filtered := make(records.Collection, 0, len(collection))
	for _, record := range collection {
		if status != StatusAll && string(record.Status) != status {
			continue
		}
		if !matches(record, term) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		less := compare(filtered[i], filtered[j], opts.SortBy)
		if opts.Order == Descending {
			return compare(filtered[j], filtered[i], opts.SortBy)
		}
		return less
	})

	return filtered
}

func matches(record records.AudioRecord, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(record.FileName), term) {
		return true
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(record.Notes), term)
}

func compare(a, b records.AudioRecord, key SortKey) bool {
	switch key {
	case SortByName:
		return a.FileName < b.FileName
	case SortBySize:
		return a.FileSize < b.FileSize
	default:
		return a.UploadDate.Before(b.UploadDate)
	}
}
