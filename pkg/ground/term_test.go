package ground

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshVarUniqueness(t *testing.T) {
	a := FreshVar()
	b := FreshVar()
	require.NotEqual(t, a.ID, b.ID)
}

func TestIsGround(t *testing.T) {
	require.True(t, IsGround(Atom("a")))
	require.False(t, IsGround(FreshVar()))
	require.True(t, IsGround(List(Atom(1), Atom(2))))

	v := FreshVar()
	require.False(t, IsGround(Compound{Functor: "f", Args: []Term{Atom(1), v}}))
}

func TestFunctor(t *testing.T) {
	name, arity := Functor(Compound{Functor: "p", Args: []Term{Atom(1), Atom(2)}})
	require.Equal(t, "p", name)
	require.Equal(t, 2, arity)

	name, arity = Functor(Atom("a"))
	require.Equal(t, "a", name)
	require.Equal(t, 0, arity)
}

func TestListString(t *testing.T) {
	l := List(Atom(1), Atom(2), Atom(3))
	require.Equal(t, "[1, 2, 3]", l.String())
}
