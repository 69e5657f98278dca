package ground

// orRecord implements §4.2.3 (Disjunction). Unlike Conj, Disj is
// genuinely N-ary: one call is issued per child up front.
type orRecord struct {
	baseRecord
	toComplete int
	results    *ResultSet
}

func activateOr(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) []action {
	r := &orRecord{
		baseRecord: baseRecord{parent: parent, identifier: identifier, transform: transform, ctx: ctx, node: node},
		toComplete: len(node.Children),
		results:    NewResultSet(),
	}
	e.arena.alloc(r)
	actions := make([]action, 0, len(node.Children))
	for _, child := range node.Children {
		actions = append(actions, callAction(child, ctx, r.ptr, nil, nil))
	}
	return actions
}

func (r *orRecord) onResult(e *Engine, in action) (bool, []action) {
	var actions []action
	if r.isOnCycle {
		gn, _ := r.results.MergeOnCycle(e.target, in.result, in.groundNode)
		if out, ok := r.transform.Apply(in.result); ok {
			actions = append(actions, resultAction(r.parent, out, gn, r.identifier, false))
		}
	} else {
		r.results.Add(in.result, in.groundNode)
	}
	if in.isLast {
		r.toComplete--
	}
	if r.toComplete == 0 {
		actions = append(actions, r.finish(e)...)
		return true, actions
	}
	return false, actions
}

func (r *orRecord) onComplete(e *Engine, in action) (bool, []action) {
	r.toComplete--
	if r.toComplete == 0 {
		return true, r.finish(e)
	}
	return false, nil
}

// finish collapses any not-yet-collapsed results (a no-op if createCycle
// already ran) and forwards whatever has not yet been streamed to the
// parent, then signals completion.
func (r *orRecord) finish(e *Engine) []action {
	already := r.results.IsCollapsed() || r.isOnCycle
	if !r.results.IsCollapsed() {
		r.results.Collapse(e.target, true)
	}
	var actions []action
	if !already {
		for _, entry := range r.results.Entries() {
			if out, ok := r.transform.Apply(entry.Result); ok {
				actions = append(actions, resultAction(r.parent, out, entry.Collapsed, r.identifier, false))
			}
		}
	}
	actions = append(actions, completeAction(r.parent, r.identifier))
	return actions
}

func (r *orRecord) createCycle(e *Engine) ([]action, error) {
	r.isOnCycle = true
	r.results.Collapse(e.target, false)
	var actions []action
	for _, entry := range r.results.Entries() {
		if out, ok := r.transform.Apply(entry.Result); ok {
			actions = append(actions, resultAction(r.parent, out, entry.Collapsed, r.identifier, false))
		}
	}
	return actions, nil
}
