package ground

// activateCall implements §4.2.7. Like Clause, a Call needs no arena
// slot of its own in the ordinary case: it resolves its target (a
// well-known built-in sentinel, a user-registered built-in, or an
// ordinary def-node) and either answers one-shot or re-dispatches
// straight to the target with a transform extended by
// unify_call_return. findall/3 is the one call target that genuinely
// needs its own machinery, handled by activateFindall below.
func activateCall(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) ([]action, error) {
	calleeArgs := renameArgs(node.CallArgs, ctx)

	switch node.CallTarget {
	case NodeTrueBuiltin:
		return succeed(parent, ctx, TRUE, identifier, transform), nil

	case NodeFailBuiltin:
		return fail(parent, identifier), nil

	case NodeNotEqBuiltin:
		if _, ok := unify(calleeArgs[0], calleeArgs[1], newBindings()); ok {
			return fail(parent, identifier), nil
		}
		return succeed(parent, ctx, TRUE, identifier, transform), nil

	case NodeFindallBuiltin:
		return activateFindall(e, node, parent, ctx, identifier, transform)
	}

	if node.CallTarget <= BuiltinUserBase {
		return dispatchBuiltin(e, node.CallTarget, calleeArgs, parent, identifier, transform, node.Location)
	}

	if _, ok := e.database.GetNode(node.CallTarget); !ok {
		if e.config.Unknown == UnknownFail {
			return fail(parent, identifier), nil
		}
		return nil, &UnknownClauseError{Functor: node.CallFunctor, Arity: node.CallArity, Location: node.Location}
	}

	callTransform := transform.Append(callReturnTransform(node.CallArgs, ctx))
	return []action{callAction(node.CallTarget, calleeArgs, parent, callTransform, identifier)}, nil
}

// activateFindall runs the compiled goal subgraph (node.Children[0]) to
// exhaustion in a nested engine sharing this one's database, target and
// cache, collects one Template instance per solution, and unifies the
// resulting list against Bag. This is the one place in the evaluator
// that uses genuine Go-stack recursion (Execute calling Execute): findall
// is an exhaustive meta-call outside the cooperative trampoline, not a
// conjunct of it, so it is exempt from the no-host-recursion discipline
// the rest of the driver follows.
func activateFindall(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) ([]action, error) {
	template := rename(node.CallArgs[0], ctx)
	bagArg := rename(node.CallArgs[1], ctx)
	goalID := node.Children[0]

	sub := e.subEngine()
	results, err := sub.Execute(goalID, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Term, 0, len(results))
	for _, res := range results {
		b := newBindings()
		b, ok := unifyArgs(ctx, res.Bindings, b)
		if !ok {
			continue
		}
		items = append(items, b.deepWalk(template))
	}

	b := newBindings()
	b, ok := unify(bagArg, List(items...), b)
	if !ok {
		return fail(parent, identifier), nil
	}
	return succeed(parent, b.deepWalkContext(ctx), TRUE, identifier, transform), nil
}
