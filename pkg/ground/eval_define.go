package ground

// defineRecord implements §4.2.5, the heart of the engine: a tabled
// goal. It owns a result set shared across every clause it tries, and
// carries the flags the cycle protocol (§4.4) needs to recognize and
// close strongly-connected regions of the SLD tree.
type defineRecord struct {
	baseRecord

	functor string
	arity   int
	args    Context
	isGround bool

	results    *ResultSet
	toComplete int

	cycleChildren []int
	cycleClose    map[int]bool

	isCycleRoot   bool
	isCycleChild  bool
	isCycleParent bool
}

// activateDefine implements the four activation cases of §4.2.5.
func activateDefine(e *Engine, node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) ([]action, error) {
	functor, arity := node.Functor, node.Arity
	cache := e.target.Cache()
	isGround := ctx.IsGround()

	// Case 1: cache hit.
	if isGround {
		if gn, ok := cache.LookupGround(functor, arity, ctx); ok {
			e.stats.recordCacheHit()
			if gn == FALSE {
				return []action{completeAction(parent, identifier)}, nil
			}
			out, ok := transform.Apply(ctx)
			if !ok {
				return []action{completeAction(parent, identifier)}, nil
			}
			return []action{resultAction(parent, out, gn, identifier, true)}, nil
		}
	}
	if rs, ok := cache.LookupResults(functor, arity, ctx); ok {
		e.stats.recordCacheHit()
		var actions []action
		for _, entry := range rs.Entries() {
			if out, ok2 := transform.Apply(entry.Result); ok2 {
				actions = append(actions, resultAction(parent, out, entry.Collapsed, identifier, false))
			}
		}
		actions = append(actions, completeAction(parent, identifier))
		return actions, nil
	}
	e.stats.recordCacheMiss()

	// Case 2 & 3: an evaluation for this exact goal is already active.
	if active, ok := cache.Active(functor, arity, ctx); ok {
		if isGround && active.results.Len() > 0 {
			active.results.Collapse(e.target, false)
			active.isCycleParent = true
			entries := active.results.Entries()
			if len(entries) != 1 {
				return nil, &InvalidEngineStateError{Message: "ground re-entry into an active tabled goal with more than one buffered result"}
			}
			out, ok2 := transform.Apply(ctx)
			var actions []action
			if ok2 {
				actions = append(actions, resultAction(parent, out, entries[0].Collapsed, identifier, true))
			} else {
				actions = append(actions, completeAction(parent, identifier))
			}
			extra, err := e.checkCycle(parent, active.ptr, active.location())
			if err != nil {
				return nil, err
			}
			return append(actions, extra...), nil
		}

		r := &defineRecord{
			baseRecord: baseRecord{parent: parent, identifier: identifier, transform: transform, ctx: ctx, node: node},
			functor:    functor, arity: arity, args: ctx, isGround: isGround,
			results: NewResultSet(),
		}
		e.arena.alloc(r)
		e.stats.recordDefine()
		return e.cycleDetected(r, active)
	}

	// Case 4: genuinely new goal.
	if len(node.Clauses) == 0 {
		return []action{completeAction(parent, identifier)}, nil
	}
	r := &defineRecord{
		baseRecord: baseRecord{parent: parent, identifier: identifier, transform: transform, ctx: ctx, node: node},
		functor:    functor, arity: arity, args: ctx, isGround: isGround,
		results:    NewResultSet(),
		toComplete: len(node.Clauses),
	}
	e.arena.alloc(r)
	e.stats.recordDefine()
	cache.SetActive(functor, arity, ctx, r)
	actions := make([]action, 0, len(node.Clauses))
	for _, clauseID := range node.Clauses {
		actions = append(actions, callAction(clauseID, ctx, r.ptr, nil, nil))
	}
	return actions, nil
}

// onResult handles a result delivered from one of this Define's clause
// children (or, for a cycle child, from the active record it conducts
// for). A result's is_last flag is itself the completion signal for
// that source (§4.3/§9: a one-shot producer like Fact never follows its
// last result with a separate complete), so onResult must route is_last
// through the same bookkeeping onComplete does, not just add-and-wait.
func (r *defineRecord) onResult(e *Engine, in action) (bool, []action) {
	if r.isCycleChild {
		var actions []action
		if out, ok := r.transform.Apply(in.result); ok {
			actions = append(actions, resultAction(r.parent, out, in.groundNode, r.identifier, in.isLast))
		} else if in.isLast {
			actions = append(actions, completeAction(r.parent, r.identifier))
		}
		// A cycle child is a pure conduit: once its source marks a
		// result as last, it will never be reached again and unwinds
		// immediately, same as the original's is_last-triggers-complete
		// path for this branch.
		return in.isLast, actions
	}

	var actions []action
	if r.isOnCycle || r.isCycleParent {
		actions = r.mergeAndNotify(e, in.result, in.groundNode)
	} else {
		r.results.Add(in.result, in.groundNode)
	}

	if in.isLast {
		done, finishActions := r.clauseDone(e)
		return done, append(actions, finishActions...)
	}
	return false, actions
}

// clauseDone accounts for one clause child having finished — whether
// signaled by an explicit complete action or inline via a result's
// is_last flag — and, once every clause has reported in, finalizes the
// Define exactly as a natural onComplete would.
func (r *defineRecord) clauseDone(e *Engine) (bool, []action) {
	r.toComplete--
	if r.toComplete > 0 {
		return false, nil
	}
	return true, r.finalize(e)
}

// mergeAndNotify implements the "on cycle or cycle parent" result branch
// of §4.2.5: merge into the shared result set, notify this Define's own
// parent when it is itself on-cycle, and relay to every cycle child.
func (r *defineRecord) mergeAndNotify(e *Engine, result Context, groundNode GroundNode) []action {
	gn, _ := r.results.MergeOnCycle(e.target, result, groundNode)
	if e.config.LabelAll {
		e.target.AddName(r.functor, gn, "defined")
	}
	var actions []action
	if r.isOnCycle {
		if out, ok := r.transform.Apply(result); ok {
			actions = append(actions, resultAction(r.parent, out, gn, r.identifier, false))
		}
	}
	for _, childPtr := range r.cycleChildren {
		actions = append(actions, resultAction(childPtr, result, gn, nil, r.isGround))
	}
	if r.isGround && e.cycleRoot != nil {
		for _, childPtr := range r.cycleChildren {
			delete(e.cycleRoot.cycleClose, childPtr)
		}
	}
	return actions
}

func (r *defineRecord) onComplete(e *Engine, in action) (bool, []action) {
	if r.isCycleChild {
		return true, []action{completeAction(r.parent, r.identifier)}
	}
	return r.clauseDone(e)
}

// finalize runs once every one of this Define's clauses has reported in
// (via clauseDone): collapse and write through to the cache, forward any
// results that were not already streamed incrementally while on-cycle,
// and signal completion upward.
func (r *defineRecord) finalize(e *Engine) []action {
	cache := e.target.Cache()
	wasOnCycle := r.isOnCycle
	r.results.Collapse(e.target, true)
	cache.Store(r.functor, r.arity, r.args, r.results)
	cache.ClearActive(r.functor, r.arity, r.args)
	if r.results.Len() == 0 {
		cache.StoreFailure(r.functor, r.arity, r.args)
	}

	var actions []action
	if !wasOnCycle {
		for _, entry := range r.results.Entries() {
			if out, ok := r.transform.Apply(entry.Result); ok {
				actions = append(actions, resultAction(r.parent, out, entry.Collapsed, r.identifier, false))
			}
		}
	}
	actions = append(actions, completeAction(r.parent, r.identifier))

	// Cycle closure (§4.4): the root notifies every remaining cycle
	// child it never heard a ground result for, so those conduits can
	// finish and unwind their own parents in turn.
	if r.isCycleRoot {
		actions = append(actions, r.closeCycle()...)
	}
	if e.cycleRoot == r {
		e.cycleRoot = nil
	}
	return actions
}

// closeCycle implements §4.4's closure transition: emit one complete to
// every record still waiting in cycle_close (because it never heard a
// ground result) and clear the set. It may run either here, as part of
// this root's own natural completion, or eagerly from the driver when a
// new call predates the root or the action queue would otherwise drain
// with a cycle still open — the root itself is untouched either way and
// remains live until it completes naturally.
func (r *defineRecord) closeCycle() []action {
	if len(r.cycleClose) == 0 {
		return nil
	}
	actions := make([]action, 0, len(r.cycleClose))
	for childPtr := range r.cycleClose {
		actions = append(actions, completeAction(childPtr, nil))
	}
	r.cycleClose = nil
	return actions
}

func (r *defineRecord) createCycle(e *Engine) ([]action, error) {
	r.isOnCycle = true
	if !r.results.IsCollapsed() {
		r.results.Collapse(e.target, false)
	}
	var actions []action
	for _, entry := range r.results.Entries() {
		if out, ok := r.transform.Apply(entry.Result); ok {
			actions = append(actions, resultAction(r.parent, out, entry.Collapsed, r.identifier, false))
		}
	}
	return actions, nil
}
