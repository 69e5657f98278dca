package ground

// UnifyError describes a failed unification attempt. Nothing in the
// engine constructs it: unify and unifyArgs report failure as a false
// result, which their call sites turn into a `complete` action.
type UnifyError struct {
	Left, Right Term
}

func (e *UnifyError) Error() string {
	return "unification failed: " + e.Left.String() + " / " + e.Right.String()
}

// unify attempts to make a and b equal under b0, returning the extended
// bindings on success. No occurs check is performed, matching standard
// Prolog unification semantics.
func unify(a, b Term, b0 *bindings) (*bindings, bool) {
	a = b0.walk(a)
	b = b0.walk(b)

	av, aIsVar := a.(Var)
	bv, bIsVar := b.(Var)

	switch {
	case aIsVar && bIsVar:
		if av.ID == bv.ID {
			return b0, true
		}
		return b0.bind(av.ID, b), true
	case aIsVar:
		return b0.bind(av.ID, b), true
	case bIsVar:
		return b0.bind(bv.ID, a), true
	}

	ac, aIsCompound := a.(Compound)
	bc, bIsCompound := b.(Compound)
	if aIsCompound && bIsCompound {
		if ac.Functor != bc.Functor || len(ac.Args) != len(bc.Args) {
			return b0, false
		}
		cur := b0
		for i := range ac.Args {
			var ok bool
			cur, ok = unify(ac.Args[i], bc.Args[i], cur)
			if !ok {
				return b0, false
			}
		}
		return cur, true
	}
	if aIsCompound || bIsCompound {
		return b0, false
	}

	ac0, aIsConst := a.(Const)
	bc0, bIsConst := b.(Const)
	if aIsConst && bIsConst && ac0.Value == bc0.Value {
		return b0, true
	}
	return b0, false
}

// unifyArgs unifies a and b element-wise, both interpreted as Contexts,
// requiring equal length.
func unifyArgs(a, b Context, b0 *bindings) (*bindings, bool) {
	if len(a) != len(b) {
		return b0, false
	}
	cur := b0
	for i := range a {
		var ok bool
		cur, ok = unify(a[i], b[i], cur)
		if !ok {
			return b0, false
		}
	}
	return cur, true
}
