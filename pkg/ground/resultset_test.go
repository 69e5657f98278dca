package ground

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultSetAddDeduplicates(t *testing.T) {
	rs := NewResultSet()
	rs.Add(Context{Atom(1)}, GroundNode(10))
	e, isNew := rs.Add(Context{Atom(1)}, GroundNode(11))
	require.False(t, isNew)
	require.Equal(t, []GroundNode{10, 11}, e.Nodes)
	require.Equal(t, 1, rs.Len())
}

func TestResultSetCollapseIsIdempotent(t *testing.T) {
	rs := NewResultSet()
	rs.Add(Context{Atom(1)}, GroundNode(10))
	gp := NewGroundProgram()

	rs.Collapse(gp, true)
	first := rs.Entries()[0].Collapsed
	rs.Collapse(gp, true)
	require.Equal(t, first, rs.Entries()[0].Collapsed)
}

func TestResultSetMergeOnCycleNewTuple(t *testing.T) {
	rs := NewResultSet()
	gp := NewGroundProgram()
	gn, isNew := rs.MergeOnCycle(gp, Context{Atom(1)}, GroundNode(10))
	require.True(t, isNew)
	require.NotEqual(t, GroundNode(0), gn)
}

func TestResultSetMergeOnCycleAddsDisjunct(t *testing.T) {
	rs := NewResultSet()
	gp := NewGroundProgram()
	gn1, _ := rs.MergeOnCycle(gp, Context{Atom(1)}, GroundNode(10))
	gn2, isNew := rs.MergeOnCycle(gp, Context{Atom(1)}, GroundNode(11))
	require.False(t, isNew)
	require.Equal(t, gn1, gn2)

	e, ok := rs.Lookup(Context{Atom(1)})
	require.True(t, ok)
	require.Equal(t, []GroundNode{10, 11}, e.Nodes)
}
