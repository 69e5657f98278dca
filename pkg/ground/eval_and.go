package ground

// andRecord implements §4.2.2 (Conjunction). Compiled Conj nodes are
// always binary — a database builder folds an N-ary conjunction into a
// right-nested chain of binary nodes — which keeps the two-identifier
// convention ("⊥ from the first conjunct, first-conjunct's ground node
// from the second") exactly as described.
type andRecord struct {
	baseRecord
	toComplete  int
	secondChild NodeID
}

func activateAnd(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) []action {
	r := &andRecord{
		baseRecord:  baseRecord{parent: parent, identifier: identifier, transform: transform, ctx: ctx, node: node},
		toComplete:  1,
		secondChild: node.Children[1],
	}
	e.arena.alloc(r)
	return []action{callAction(node.Children[0], ctx, r.ptr, nil, nil)}
}

func (r *andRecord) onResult(e *Engine, in action) (bool, []action) {
	if in.identifier == nil {
		// Result from the first conjunct: spawn the second conjunct
		// against the now-more-bound context, threading the first
		// conjunct's ground node through as the identifier.
		r.toComplete++
		actions := []action{callAction(r.secondChild, in.result, r.ptr, nil, in.groundNode)}
		if in.isLast {
			r.toComplete--
		}
		if r.toComplete == 0 {
			actions = append(actions, completeAction(r.parent, r.identifier))
			return true, actions
		}
		return false, actions
	}

	// Result from the second conjunct: combine both ground nodes and
	// forward upward.
	firstGround := in.identifier.(GroundNode)
	andNode := e.target.AddAnd(firstGround, in.groundNode)
	var actions []action
	if out, ok := r.transform.Apply(in.result); ok {
		actions = append(actions, resultAction(r.parent, out, andNode, r.identifier, false))
	}
	if in.isLast {
		r.toComplete--
	}
	if r.toComplete == 0 {
		actions = append(actions, completeAction(r.parent, r.identifier))
		return true, actions
	}
	return false, actions
}

func (r *andRecord) onComplete(e *Engine, in action) (bool, []action) {
	r.toComplete--
	if r.toComplete == 0 {
		return true, []action{completeAction(r.parent, r.identifier)}
	}
	return false, nil
}

func (r *andRecord) createCycle(e *Engine) ([]action, error) {
	return r.defaultCreateCycle()
}
