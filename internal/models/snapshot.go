package models

import "time"

// Snapshot is a point-in-time copy of a collection plus fetch metadata.
// It is owned exclusively by the component that fetched it: callers
// replace the whole snapshot on re-fetch and never mutate Records in
// place from outside. Fallback marks snapshots served from seed data
// after a fetch failure, so callers can tell degraded data apart.
type Snapshot[T any] struct {
	Records   []T
	Total     int
	FetchedAt time.Time
	Fallback  bool
}

// NewSnapshot builds a snapshot taken at the given time. Total may
// exceed len(records) when the source paginates server-side.
func NewSnapshot[T any](records []T, total int, fetchedAt time.Time) Snapshot[T] {
	if total < len(records) {
		total = len(records)
	}
	return Snapshot[T]{Records: records, Total: total, FetchedAt: fetchedAt}
}

// ReplaceByID returns a copy of records with the record matching id
// replaced. Matching is by identifier, never by index, so stale
// positions cannot corrupt the collection. When no record matches, the
// input is returned unchanged.
func ReplaceByID[T any](records []T, id string, idOf func(T) string, updated T) []T {
	for i, r := range records {
		if idOf(r) == id {
			out := make([]T, len(records))
			copy(out, records)
			out[i] = updated
			return out
		}
	}
	return records
}
