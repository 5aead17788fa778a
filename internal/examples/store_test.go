package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieve_RanksByTokenOverlap(t *testing.T) {
	store := NewStore([]Example{
		{Question: "total payroll by department", SQL: "q0"},
		{Question: "fraud companies created last month", SQL: "q1"},
		{Question: "credit loss totals by quarter", SQL: "q2"},
	})

	got := store.Retrieve("show me fraud companies from last week", 1)

	require.Len(t, got, 1)
	assert.Equal(t, "q1", got[0].SQL)
}

func TestRetrieve_Deterministic(t *testing.T) {
	store := Default()

	first := store.Retrieve("fraud losses last month", 3)

	for i := 0; i < 10; i++ {
		again := store.Retrieve("fraud losses last month", 3)
		assert.Equal(t, first, again)
	}
}

func TestRetrieve_TiesResolveByAdditionOrder(t *testing.T) {
	store := NewStore([]Example{
		{Question: "alpha beta", SQL: "q0"},
		{Question: "gamma delta", SQL: "q1"},
		{Question: "epsilon zeta", SQL: "q2"},
	})

	// No token overlaps with any example: all scores tie at zero.
	got := store.Retrieve("completely unrelated question", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "q0", got[0].SQL)
	assert.Equal(t, "q1", got[1].SQL)
}

func TestRetrieve_NonPositiveKReturnsAll(t *testing.T) {
	store := Default()

	assert.Len(t, store.Retrieve("anything", 0), store.Len())
	assert.Len(t, store.Retrieve("anything", -1), store.Len())
	assert.Len(t, store.Retrieve("anything", store.Len()+5), store.Len())
}

func TestDefault_ExamplesAreBoundedSelects(t *testing.T) {
	for _, ex := range Default().All() {
		assert.Regexp(t, `(?i)^select`, ex.SQL, ex.Question)
		assert.Regexp(t, `(?i)\blimit 100`, ex.SQL, ex.Question)
	}
}
