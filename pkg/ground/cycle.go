package ground

// checkCycle implements the cycle-propagation walk of §4.4: starting at
// slot from and following parentPtr() links, mark every record not yet
// on-cycle as on-cycle (via its own createCycle hook) until stopAt is
// reached. A Not record anywhere on that path refuses with
// NegativeCycleError (via notRecord.createCycle); running off the top of
// the arena (⊥) before reaching stopAt means the cycle closes through
// call/N or findall/3 rather than direct recursion, which is
// IndirectCallCycleError.
func (e *Engine) checkCycle(from, stopAt int, loc Location) ([]action, error) {
	var actions []action
	cur := from
	for cur != stopAt {
		if cur == botPtr {
			return nil, &IndirectCallCycleError{Location: loc}
		}
		rec := e.arena.get(cur)
		if rec == nil {
			return nil, &IndirectCallCycleError{Location: loc}
		}
		if !rec.onCycle() {
			acts, err := rec.createCycle(e)
			if err != nil {
				return nil, err
			}
			actions = append(actions, acts...)
		}
		cur = rec.parentPtr()
	}
	return actions, nil
}

// cycleDetected implements the "Detection" transition of §4.4: a fresh
// call re-entered a goal that is already active. r becomes active's
// cycle child; active becomes (or remains) the region's cycle root and
// starts streaming instead of batching; active's already-known results
// are replayed to r so r's own parent receives them as they become
// known. What happens next to the driver-global cycle root depends on
// how active relates to it: first establishment, nesting under the
// existing root, or a root swap when active turns out to be older than
// the current root.
func (e *Engine) cycleDetected(r *defineRecord, active *defineRecord) ([]action, error) {
	e.stats.recordCycle()
	r.isCycleChild = true
	if active.cycleClose == nil {
		active.cycleClose = make(map[int]bool)
	}
	active.cycleChildren = append(active.cycleChildren, r.ptr)
	active.cycleClose[r.ptr] = true
	active.isCycleRoot = true
	active.isOnCycle = true
	if !active.results.IsCollapsed() {
		active.results.Collapse(e.target, false)
	}

	actions := make([]action, 0, active.results.Len())
	for _, entry := range active.results.Entries() {
		actions = append(actions, resultAction(r.ptr, entry.Result, entry.Collapsed, nil, false))
	}

	var transition []action
	var err error
	switch {
	case e.cycleRoot == nil:
		// First-cycle establishment: active becomes the root outright.
		e.cycleRoot = active
		transition, err = e.checkCycle(r.parent, active.ptr, active.location())

	case active.ptr < e.cycleRoot.ptr:
		// Root swap: active predates the current root, so it takes
		// over as the new root. The old root demotes to an ordinary
		// on-cycle member, its pending cycle_close set transfers to
		// active, and the walk from the old root up to active paints
		// every intervening record on-cycle — the point at which a Not
		// on the path surfaces NegativeCycle, or an unreachable ⊥
		// parent surfaces IndirectCallCycleError.
		transition, err = e.swapCycleRoot(active)

	default:
		// active already sits within (or is) the current root's
		// region; just paint the path from r's caller up to it.
		transition, err = e.checkCycle(r.parent, active.ptr, active.location())
	}
	if err != nil {
		return nil, err
	}
	return append(actions, transition...), nil
}

// swapCycleRoot demotes the current cycle root in favor of newRoot,
// which the caller has already determined is older (§4.4 root swap).
func (e *Engine) swapCycleRoot(newRoot *defineRecord) ([]action, error) {
	oldRoot := e.cycleRoot
	if newRoot.cycleClose == nil {
		newRoot.cycleClose = make(map[int]bool)
	}
	for childPtr := range oldRoot.cycleClose {
		newRoot.cycleClose[childPtr] = true
	}
	oldRoot.cycleClose = nil
	oldRoot.isCycleRoot = false
	e.cycleRoot = newRoot

	actions, err := oldRoot.createCycle(e)
	if err != nil {
		return nil, err
	}

	walked, err := e.checkCycle(oldRoot.parentPtr(), newRoot.ptr, newRoot.location())
	if err != nil {
		return nil, err
	}
	return append(actions, walked...), nil
}
