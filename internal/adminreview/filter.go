// Package adminreview filters and exports already-fetched lead
// collections. Everything operates in memory on copies; source slices are
// never mutated.
package adminreview

import (
	"sort"
	"strings"
	"time"
)

type SortDir string

const (
	SortNewestFirst SortDir = "desc"
	SortOldestFirst SortDir = "asc"
)

// Record is one lead flattened for review: Body holds the message for
// contacts and the skills blurb for join requests. CSVRow carries the full
// export cells in the caller's column order so filtering and export stay
// decoupled from the record kind.
type Record struct {
	ID        string
	Name      string
	Email     string
	Body      string
	CreatedAt *time.Time
	CSVRow    []string
}

type Query struct {
	Text     string
	FromDate *time.Time // start of day, caller's local time
	ToDate   *time.Time // start of day; the bound includes the whole day
	Sort     SortDir
}

// Filter applies free-text search, inclusive date bounding and
// chronological sort. It is idempotent: reapplying with identical
// arguments yields the same ordering.
func Filter(records []Record, q Query) []Record {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]Record, 0, len(records))
	for _, record := range records {
		if !inDateRange(record.CreatedAt, q.FromDate, q.ToDate) {
			continue
		}
		if needle != "" && !matches(record, needle) {
			continue
		}
		out = append(out, record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := epoch(out[i].CreatedAt), epoch(out[j].CreatedAt)
		if q.Sort == SortOldestFirst {
			return a < b
		}
		return a > b
	})

	return out
}

func matches(record Record, needle string) bool {
	return strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Email), needle) ||
		strings.Contains(strings.ToLower(record.Body), needle)
}

// inDateRange bounds by full calendar days. A record with no resolved
// timestamp is always in range.
func inDateRange(createdAt, from, to *time.Time) bool {
	if createdAt == nil {
		return true
	}
	if from != nil && createdAt.Before(startOfDay(*from)) {
		return false
	}
	if to != nil && !createdAt.Before(startOfDay(*to).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// epoch orders records chronologically; missing timestamps sort as epoch
// zero.
func epoch(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

// Emails returns the unique, order-preserving email list for the bulk-copy
// action. Blank addresses are dropped.
func Emails(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, record := range records {
		if record.Email == "" {
			continue
		}
		if _, ok := seen[record.Email]; ok {
			continue
		}
		seen[record.Email] = struct{}{}
		out = append(out, record.Email)
	}
	return out
}
