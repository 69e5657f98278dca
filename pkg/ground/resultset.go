package ground

// resultKey is a canonical string form of a result Context, used to find
// whether a tuple has already been recorded. Terms are fully ground (or
// at least stably printable) by the time they reach a ResultSet, so
// String() equality is a sound proxy for structural equality here.
func resultKey(ctx Context) string {
	s := ""
	for i, t := range ctx {
		if i > 0 {
			s += "\x1f"
		}
		s += t.String()
	}
	return s
}

// resultEntry holds one distinct result tuple together with the ground
// nodes contributed for it so far. Before collapse, Nodes is the list of
// contributing ground-node ids; after collapse, Collapsed holds the
// single addOr node folded from that list.
type resultEntry struct {
	Result       Context
	Nodes        []GroundNode
	Collapsed    GroundNode
	hasCollapsed bool
}

// ResultSet owns an insertion-ordered sequence of (result, nodes) pairs
// plus an index from the result's canonical key to its position, exactly
// as described in the data model: a Define or Or accumulates results
// here until every child reports complete, then collapses once.
type ResultSet struct {
	order    []*resultEntry
	byKey    map[string]*resultEntry
	collapsed bool
}

// NewResultSet returns an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{byKey: make(map[string]*resultEntry)}
}

// Add records a contribution of groundNode for result, appending a new
// entry if result has not been seen before, or appending groundNode to
// the existing entry's node list otherwise. It returns the entry and
// whether it was newly created.
func (rs *ResultSet) Add(result Context, groundNode GroundNode) (*resultEntry, bool) {
	k := resultKey(result)
	if e, ok := rs.byKey[k]; ok {
		e.Nodes = append(e.Nodes, groundNode)
		return e, false
	}
	e := &resultEntry{Result: result, Nodes: []GroundNode{groundNode}}
	rs.byKey[k] = e
	rs.order = append(rs.order, e)
	return e, true
}

// Lookup finds the entry for result, if any.
func (rs *ResultSet) Lookup(result Context) (*resultEntry, bool) {
	e, ok := rs.byKey[resultKey(result)]
	return e, ok
}

// Entries returns the entries in insertion order.
func (rs *ResultSet) Entries() []*resultEntry {
	return rs.order
}

// Len reports the number of distinct result tuples recorded.
func (rs *ResultSet) Len() int {
	return len(rs.order)
}

// Collapse folds each entry's node list into a single addOr node via
// target, in insertion order. Collapse is one-way and idempotent: a
// second call is a no-op. When readonly is false the resulting Or nodes
// remain open for later AddDisjunct calls (the on-cycle case).
func (rs *ResultSet) Collapse(target GroundTarget, readonly bool) {
	if rs.collapsed {
		return
	}
	for _, e := range rs.order {
		e.Collapsed = target.AddOr(e.Nodes, readonly)
		e.hasCollapsed = true
	}
	rs.collapsed = true
}

// IsCollapsed reports whether Collapse has already run.
func (rs *ResultSet) IsCollapsed() bool {
	return rs.collapsed
}

// MergeOnCycle implements the on-cycle result-merging rule shared by Or
// (§4.2.3) and Define (§4.2.5): once a result set is streaming because it
// lies on an open cycle, a result tuple seen again contributes its ground
// node as an extra disjunct on the tuple's existing (mutable) Or node; a
// genuinely new tuple gets a fresh single-disjunct mutable Or allocated
// immediately, rather than waiting for a batch Collapse. It returns the
// tuple's ground node and whether the tuple was newly created.
func (rs *ResultSet) MergeOnCycle(target GroundTarget, result Context, groundNode GroundNode) (GroundNode, bool) {
	if e, ok := rs.Lookup(result); ok {
		if e.hasCollapsed {
			target.AddDisjunct(e.Collapsed, groundNode)
			e.Nodes = append(e.Nodes, groundNode)
			return e.Collapsed, false
		}
		e.Nodes = append(e.Nodes, groundNode)
		e.Collapsed = target.AddOr(e.Nodes, false)
		e.hasCollapsed = true
		return e.Collapsed, false
	}
	e, _ := rs.Add(result, groundNode)
	e.Collapsed = target.AddOr(e.Nodes, false)
	e.hasCollapsed = true
	return e.Collapsed, true
}
