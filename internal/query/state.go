package query

// State tracks the active query parameters for one list view. Changing
// the search term or any filter clause resets the page to 1, so a
// shrinking result set never leaves the view on an empty page.
//
// State also carries a request token for fetch supersession: every
// parameter change bumps the token, and a response tagged with an older
// token must be discarded instead of applied. This guards against the
// slow-response race where the page changed again while a fetch for the
// previous parameters was still in flight.
type State struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int

	token uint64
}

// NewState returns a state positioned on the first page.
func NewState(limit int) *State {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &State{Filters: make(map[string]string), Page: 1, Limit: limit}
}

// SetSearch updates the free-text term. A changed term resets the page.
func (s *State) SetSearch(term string) {
	if s.Search == term {
		return
	}
	s.Search = term
	s.Page = 1
	s.token++
}

// SetFilter updates one exact-match clause value. An empty value clears
// the clause. A changed clause resets the page.
func (s *State) SetFilter(name, value string) {
	if s.Filters[name] == value {
		return
	}
	if value == "" {
		delete(s.Filters, name)
	} else {
		s.Filters[name] = value
	}
	s.Page = 1
	s.token++
}

// SetPage moves to the requested page without touching filters.
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if s.Page == page {
		return
	}
	s.Page = page
	s.token++
}

// Token returns the identifier of the current parameter set. Callers
// capture it before issuing a fetch.
func (s *State) Token() uint64 { return s.token }

// Accept reports whether a response fetched under the given token is
// still current. Stale responses must be dropped, not applied.
func (s *State) Accept(token uint64) bool { return token == s.token }
