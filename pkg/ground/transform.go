package ground

// transformFunc rewrites a result Context before it reaches the parent,
// returning ok=false to mean "drop this result" (⊥).
type transformFunc func(Context) (Context, bool)

// Transform is an ordered chain of transformFunc applied in reverse
// order (last-appended runs first), grounded on the source's
// Transformations class. Each child frame inherits a nil chain and
// builds its own — chains are never shared between unrelated frames.
type Transform struct {
	fns []transformFunc
}

// Append returns a new Transform with fn prepended to the application
// order (i.e. fn will run before everything already in the chain),
// matching "applied in reverse order to each result tuple": the
// most-recently-installed transform is the one closest to the child that
// installed it, and runs first.
func (t *Transform) Append(fn transformFunc) *Transform {
	var existing []transformFunc
	if t != nil {
		existing = t.fns
	}
	fns := make([]transformFunc, 0, len(existing)+1)
	fns = append(fns, fn)
	fns = append(fns, existing...)
	return &Transform{fns: fns}
}

// Apply runs the chain against ctx, short-circuiting to (nil, false) the
// moment any step drops the result.
func (t *Transform) Apply(ctx Context) (Context, bool) {
	if t == nil {
		return ctx, true
	}
	cur := ctx
	for _, fn := range t.fns {
		var ok bool
		cur, ok = fn(cur)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// headSubstituteTransform builds the transform a Clause record installs:
// re-applying substitute_head_args (renaming the clause's local frame
// back into the head's argument shape) to the body's result before it
// reaches the clause's parent.
func headSubstituteTransform(headArgs []Term) transformFunc {
	return func(bodyResult Context) (Context, bool) {
		// bodyResult is expressed against the clause's own local
		// variable frame (length varcount): treat it directly as the
		// rename table for the head's template args.
		out := make(Context, len(headArgs))
		for i, a := range headArgs {
			out[i] = rename(a, bodyResult)
		}
		return out, true
	}
}

// callReturnTransform builds the transform a Call record installs:
// restoring the caller's variable bindings by unifying the call's
// rewritten args against the callee's returned context
// (unify_call_return), then deep-walking the caller's own context under
// the resulting bindings. callArgs is expressed in terms of callerCtx's
// own slots (substitute_call_args has already been applied once to
// produce the callee's context; this closure re-applies the same
// rewrite to recover the unify target).
func callReturnTransform(callArgs []Term, callerCtx Context) transformFunc {
	return func(calleeResult Context) (Context, bool) {
		rewritten := renameArgs(callArgs, callerCtx)
		b := newBindings()
		b, ok := unifyArgs(rewritten, calleeResult, b)
		if !ok {
			return nil, false
		}
		return b.deepWalkContext(callerCtx), true
	}
}
