package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	Title  string
	Author string
	Pages  int
	Added  time.Time
}

var shelf = []book{
	{Title: "Clean Water", Author: "Nadia", Pages: 120, Added: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	{Title: "Soap Making", Author: "Omar", Pages: 80, Added: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	{Title: "household chemistry", Author: "Nadia", Pages: 300, Added: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
	{Title: "Floor Care", Author: "Lina", Pages: 80, Added: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
}

func bookFields(b book) []string { return []string{b.Title, b.Author} }

func TestFilterEmptySearchReturnsAll(t *testing.T) {
	got := Filter(shelf, Spec[book]{Search: "", TextFields: bookFields})
	assert.Len(t, got, len(shelf))

	got = Filter(shelf, Spec[book]{Search: "   ", TextFields: bookFields})
	assert.Len(t, got, len(shelf), "whitespace-only search matches everything")
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(shelf, Spec[book]{Search: "HOUSE", TextFields: bookFields})
	require.Len(t, got, 1)
	assert.Equal(t, "household chemistry", got[0].Title)

	// Matches across any field
	got = Filter(shelf, Spec[book]{Search: "nadia", TextFields: bookFields})
	assert.Len(t, got, 2)
}

func TestFilterClausesAreConjunctive(t *testing.T) {
	got := Filter(shelf, Spec[book]{
		Search:     "nadia",
		TextFields: bookFields,
		Clauses: []Clause[book]{
			Equals(func(b book) int { return b.Pages }, 120),
		},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Clean Water", got[0].Title)
}

func TestFilterNoTextFieldsWithTerm(t *testing.T) {
	got := Filter(shelf, Spec[book]{Search: "nadia"})
	assert.Empty(t, got, "a search term with no searchable fields matches nothing")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	before := make([]book, len(shelf))
	copy(before, shelf)
	_ = Filter(shelf, Spec[book]{Search: "soap", TextFields: bookFields})
	assert.Equal(t, before, shelf)
}

func newBookSorter() *Sorter[book] {
	return NewSorter(map[string]Compare[book]{
		"title": ByText(func(b book) string { return b.Title }),
		"pages": ByNumber(func(b book) float64 { return float64(b.Pages) }),
		"added": ByTime(func(b book) time.Time { return b.Added }),
	})
}

func TestSortByTextIgnoresCase(t *testing.T) {
	got := newBookSorter().Sort(shelf, "title", Asc)
	titles := make([]string, len(got))
	for i, b := range got {
		titles[i] = b.Title
	}
	assert.Equal(t, []string{"Clean Water", "Floor Care", "household chemistry", "Soap Making"}, titles)
}

func TestSortDescInvertsOrder(t *testing.T) {
	asc := newBookSorter().Sort(shelf, "pages", Asc)
	desc := newBookSorter().Sort(shelf, "pages", Desc)
	assert.Equal(t, asc[0].Pages, desc[len(desc)-1].Pages)
	assert.Equal(t, 300, desc[0].Pages)
}

func TestSortIsStable(t *testing.T) {
	// Two books share 80 pages; their relative input order must survive.
	got := newBookSorter().Sort(shelf, "pages", Asc)
	require.Equal(t, 80, got[0].Pages)
	require.Equal(t, 80, got[1].Pages)
	assert.Equal(t, "Soap Making", got[0].Title)
	assert.Equal(t, "Floor Care", got[1].Title)
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	got := newBookSorter().Sort(shelf, "color", Asc)
	assert.Equal(t, shelf, got)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	before := make([]book, len(shelf))
	copy(before, shelf)
	_ = newBookSorter().Sort(shelf, "title", Desc)
	assert.Equal(t, before, shelf)
}

func TestPaginateBounds(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(nums, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 7, page.Pagination.TotalItems)

	// Last page is partial
	page = Paginate(nums, 3, 3)
	assert.Equal(t, []int{7}, page.Items)
}

func TestPaginateClampsOutOfRangePage(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(nums, 99, 3)
	assert.Equal(t, 3, page.Pagination.Page, "page beyond the end clamps to the last page")
	assert.Equal(t, []int{7}, page.Items)

	page = Paginate(nums, 0, 3)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, []int{1, 2, 3}, page.Items)
}

func TestPaginateEmptyInput(t *testing.T) {
	page := Paginate([]int{}, 5, 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.Equal(t, 0, page.Pagination.TotalItems)
}

func TestPaginateDefaultLimit(t *testing.T) {
	nums := make([]int, 25)
	page := Paginate(nums, 1, 0)
	assert.Len(t, page.Items, DefaultLimit)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestPaginateNoOverlapNoGap(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	seen := map[int]bool{}
	for p := 1; p <= 4; p++ {
		page := Paginate(nums, p, 3)
		for _, n := range page.Items {
			assert.False(t, seen[n], "item %d served twice", n)
			seen[n] = true
		}
	}
	assert.Len(t, seen, len(nums))
}
