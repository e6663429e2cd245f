package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateSearchResetsPage(t *testing.T) {
	s := NewState(10)
	s.SetPage(4)
	s.SetSearch("mop")
	assert.Equal(t, 1, s.Page)
}

func TestStateFilterResetsPage(t *testing.T) {
	s := NewState(10)
	s.SetPage(3)
	s.SetFilter("category", "cleaners")
	assert.Equal(t, 1, s.Page)

	// Clearing the filter also counts as a change
	s.SetPage(2)
	s.SetFilter("category", "")
	assert.Equal(t, 1, s.Page)
	assert.NotContains(t, s.Filters, "category")
}

func TestStateUnchangedValueKeepsPageAndToken(t *testing.T) {
	s := NewState(10)
	s.SetSearch("mop")
	s.SetPage(5)
	token := s.Token()

	s.SetSearch("mop")
	s.SetFilter("missing", "")
	s.SetPage(5)

	assert.Equal(t, 5, s.Page)
	assert.Equal(t, token, s.Token())
}

func TestStateStaleTokenRejected(t *testing.T) {
	s := NewState(10)
	s.SetSearch("mo")
	inFlight := s.Token()

	// Parameters change again before the first response lands
	s.SetSearch("mop")

	assert.False(t, s.Accept(inFlight), "response for the old parameters must be dropped")
	assert.True(t, s.Accept(s.Token()))
}

func TestStatePageOnlyChangeBumpsToken(t *testing.T) {
	s := NewState(10)
	before := s.Token()
	s.SetPage(2)
	assert.NotEqual(t, before, s.Token())
}
