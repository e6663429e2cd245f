// Package query is the in-memory collection query engine shared by all
// list endpoints. It filters, sorts, and paginates an already-fetched
// collection snapshot; it performs no I/O of its own and none of its
// operations can fail. Malformed or partial records degrade to "does
// not match" when filtering and "equal" when sorting.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction selects the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Clause is one exact-match predicate over a record.
type Clause[T any] func(T) bool

// Equals builds a clause matching records whose extracted value equals want.
func Equals[T any, V comparable](get func(T) V, want V) Clause[T] {
	return func(r T) bool { return get(r) == want }
}

// Spec describes one filter pass: a free-text search over the record's
// text fields joined with zero or more exact-match clauses. All parts
// are conjunctive.
type Spec[T any] struct {
	// Search is matched case-insensitively as a substring against every
	// value TextFields yields; a record matches when ANY field contains
	// the term. A blank or whitespace-only term matches everything.
	Search     string
	TextFields func(T) []string
	Clauses    []Clause[T]
}

// Filter returns the records matching the spec. The input is never
// mutated and the result is always a fresh slice.
func Filter[T any](records []T, spec Spec[T]) []T {
	term := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, clause := range spec.Clauses {
			if clause == nil || !clause(r) {
				continue next
			}
		}
		if term != "" && !matchesText(r, term, spec.TextFields) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesText[T any](r T, term string, fields func(T) []string) bool {
	if fields == nil {
		return false
	}
	for _, f := range fields(r) {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Compare is a three-way comparator over two records.
type Compare[T any] func(a, b T) int

// collator is shared by all locale-aware string comparisons. The
// catalog mixes English and Arabic names, so plain byte comparison is
// not good enough.
var collator = collate.New(language.Und, collate.Loose)

// ByText builds a locale-aware comparator over a string field.
func ByText[T any](get func(T) string) Compare[T] {
	return func(a, b T) int { return collator.CompareString(get(a), get(b)) }
}

// ByNumber builds a numeric comparator.
func ByNumber[T any](get func(T) float64) Compare[T] {
	return func(a, b T) int {
		av, bv := get(a), get(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
}

// ByTime builds a timestamp comparator.
func ByTime[T any](get func(T) time.Time) Compare[T] {
	return func(a, b T) int {
		av, bv := get(a), get(b)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
}

// Sorter maps sort key names to comparators for one record type.
type Sorter[T any] struct {
	keys map[string]Compare[T]
}

// NewSorter builds a sorter from a key-to-comparator table.
func NewSorter[T any](keys map[string]Compare[T]) *Sorter[T] {
	return &Sorter[T]{keys: keys}
}

// Sort returns a sorted copy of records. The sort is stable: records
// comparing equal keep their input order. An unknown key yields the
// identity ordering; the UI only supplies known keys, so this leniency
// never silently reorders data.
func (s *Sorter[T]) Sort(records []T, key string, dir Direction) []T {
	out := make([]T, len(records))
	copy(out, records)

	cmp, ok := s.keys[key]
	if !ok || cmp == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Pagination describes the computed page position for a result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Page is one paginated view over a sorted result set.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// DefaultLimit is applied when the caller supplies no usable page size.
const DefaultLimit = 10

// Paginate slices the result set for the requested page. The page
// number clamps into [1, totalPages] (minimum 1 even for an empty set)
// instead of erroring, so a shrunken result set can never strand the
// caller on an empty page.
func Paginate[T any](records []T, page, limit int) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}

	total := len(records)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, records[start:end])

	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}
}
