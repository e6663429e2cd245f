package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotTotalFloor(t *testing.T) {
	now := time.Now()
	snap := NewSnapshot([]int{1, 2, 3}, 0, now)
	assert.Equal(t, 3, snap.Total, "total never undercounts the loaded records")
	assert.False(t, snap.Fallback)

	snap = NewSnapshot([]int{1, 2}, 50, now)
	assert.Equal(t, 50, snap.Total, "server-side total wins when larger")
}

func TestReplaceByID(t *testing.T) {
	products := []Product{{ID: "p1", Stock: 5}, {ID: "p2", Stock: 8}}
	idOf := func(p Product) string { return p.ID }

	out := ReplaceByID(products, "p2", idOf, Product{ID: "p2", Stock: 0})
	assert.Equal(t, 0, out[1].Stock)
	assert.Equal(t, 8, products[1].Stock, "input slice stays untouched")

	same := ReplaceByID(products, "ghost", idOf, Product{ID: "ghost"})
	assert.Equal(t, products, same)
}
