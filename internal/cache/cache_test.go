package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/dwh-analyst/internal/types"
)

func resultFor(tag string) *types.ExecutionResult {
	return &types.ExecutionResult{
		Columns:  []string{"id"},
		Rows:     []types.Row{{"id": tag}},
		RowCount: 1,
		Source:   types.SourceLive,
	}
}

func TestCache_GetSet(t *testing.T) {
	c := New(4)

	_, ok := c.Get("SELECT 1")
	assert.False(t, ok)

	c.Set("SELECT 1", resultFor("a"))

	got, ok := c.Get("SELECT 1")
	require.True(t, ok)
	assert.Equal(t, "a", got.Rows[0]["id"])

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)

	c.Set("q1", resultFor("a"))
	c.Set("q2", resultFor("b"))

	// Touch q1 so q2 becomes the eviction candidate.
	_, ok := c.Get("q1")
	require.True(t, ok)

	c.Set("q3", resultFor("c"))

	_, ok = c.Get("q1")
	assert.True(t, ok, "recently used entry survives")

	_, ok = c.Get("q2")
	assert.False(t, ok, "least recently used entry evicted")

	_, ok = c.Get("q3")
	assert.True(t, ok)
}

func TestCache_BoundHolds(t *testing.T) {
	c := New(8)

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("SELECT %d", i), resultFor("x"))
	}

	assert.Equal(t, 8, c.Stats().Entries)
}

func TestCache_SetReplacesExisting(t *testing.T) {
	c := New(2)

	c.Set("q", resultFor("old"))
	c.Set("q", resultFor("new"))

	got, ok := c.Get("q")
	require.True(t, ok)
	assert.Equal(t, "new", got.Rows[0]["id"])
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestCache_Clear(t *testing.T) {
	c := New(4)

	c.Set("q1", resultFor("a"))
	c.Set("q2", resultFor("b"))
	c.Clear()

	assert.Equal(t, 0, c.Stats().Entries)

	_, ok := c.Get("q1")
	assert.False(t, ok)
}

func TestCache_MinimumCapacity(t *testing.T) {
	c := New(0)

	c.Set("q1", resultFor("a"))
	c.Set("q2", resultFor("b"))

	assert.Equal(t, 1, c.Stats().Entries)
}
