package ground

// notRecord implements §4.2.4 (Negation). It never forwards a child's
// results — it only needs to know whether the child succeeded at all.
type notRecord struct {
	baseRecord
	nodes []GroundNode
}

func activateNot(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) []action {
	r := &notRecord{
		baseRecord: baseRecord{parent: parent, identifier: identifier, transform: transform, ctx: ctx, node: node},
	}
	e.arena.alloc(r)
	return []action{callAction(node.Child, ctx, r.ptr, nil, nil)}
}

func (r *notRecord) onResult(e *Engine, in action) (bool, []action) {
	r.nodes = append(r.nodes, in.groundNode)
	if in.isLast {
		return true, r.finish(e)
	}
	return false, nil
}

func (r *notRecord) onComplete(e *Engine, in action) (bool, []action) {
	return true, r.finish(e)
}

func (r *notRecord) finish(e *Engine) []action {
	if len(r.nodes) == 0 {
		out, ok := r.transform.Apply(r.ctx)
		if !ok {
			return []action{completeAction(r.parent, r.identifier)}
		}
		return []action{resultAction(r.parent, out, TRUE, r.identifier, true)}
	}
	orNode := e.target.AddOr(r.nodes, true)
	notNode := e.target.AddNot(orNode)
	out, ok := r.transform.Apply(r.ctx)
	if !ok {
		return []action{completeAction(r.parent, r.identifier)}
	}
	return []action{
		resultAction(r.parent, out, notNode, r.identifier, false),
		completeAction(r.parent, r.identifier),
	}
}

func (r *notRecord) createCycle(e *Engine) ([]action, error) {
	return nil, &NegativeCycleError{Location: r.location()}
}
