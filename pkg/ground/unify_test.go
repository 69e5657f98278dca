package ground

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifyConstants(t *testing.T) {
	_, ok := unify(Atom(1), Atom(1), newBindings())
	require.True(t, ok)

	_, ok = unify(Atom(1), Atom(2), newBindings())
	require.False(t, ok)
}

func TestUnifyVarBinding(t *testing.T) {
	v := FreshVar()
	b, ok := unify(v, Atom("hello"), newBindings())
	require.True(t, ok)
	require.Equal(t, Term(Atom("hello")), b.deepWalk(v))
}

func TestUnifyCompound(t *testing.T) {
	v := FreshVar()
	left := Compound{Functor: "f", Args: []Term{Atom(1), v}}
	right := Compound{Functor: "f", Args: []Term{Atom(1), Atom(2)}}
	b, ok := unify(left, right, newBindings())
	require.True(t, ok)
	require.Equal(t, Term(Atom(2)), b.deepWalk(v))
}

func TestUnifyArityMismatch(t *testing.T) {
	left := Compound{Functor: "f", Args: []Term{Atom(1)}}
	right := Compound{Functor: "f", Args: []Term{Atom(1), Atom(2)}}
	_, ok := unify(left, right, newBindings())
	require.False(t, ok)
}

func TestUnifyArgsLengthMismatch(t *testing.T) {
	_, ok := unifyArgs(Context{Atom(1)}, Context{Atom(1), Atom(2)}, newBindings())
	require.False(t, ok)
}

func TestBindingsDeepWalkContext(t *testing.T) {
	v := FreshVar()
	b, ok := unify(v, Atom(42), newBindings())
	require.True(t, ok)
	out := b.deepWalkContext(Context{v, Atom("x")})
	require.Equal(t, Context{Atom(42), Atom("x")}, out)
}
