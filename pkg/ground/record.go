package ground

// record is the common interface every evaluation-record variant
// implements: the heterogeneous tagged set from §4.2, dispatched on
// Go's dynamic type rather than an explicit tag, since the set is
// closed and small and each variant already needs its own struct.
type record interface {
	pointer() int
	setPointer(int)
	parentPtr() int

	// onResult handles a result delivered from a child (or, for Fact/
	// Choice/BuiltIn one-shot records, is never called). Returns
	// whether the record should be cleaned up and any follow-on
	// actions.
	onResult(e *Engine, in action) (cleanup bool, actions []action)

	// onComplete handles a child's exhaustion signal.
	onComplete(e *Engine, in action) (cleanup bool, actions []action)

	// createCycle is invoked by the cycle protocol when this record
	// lies on a newly-discovered cycle path. Default behavior (most
	// variants): mark on-cycle and do nothing further.
	createCycle(e *Engine) ([]action, error)

	onCycle() bool
	location() Location
}

// baseRecord carries the fields common to every variant (§3's
// "evaluation record" common fields), embedded by each concrete type.
type baseRecord struct {
	ptr        int
	parent     int
	identifier interface{}
	transform  *Transform
	ctx        Context
	node       *Node
	isOnCycle  bool
}

func (b *baseRecord) pointer() int       { return b.ptr }
func (b *baseRecord) setPointer(p int)   { b.ptr = p }
func (b *baseRecord) parentPtr() int     { return b.parent }
func (b *baseRecord) onCycle() bool      { return b.isOnCycle }
func (b *baseRecord) location() Location {
	if b.node == nil {
		return Location{}
	}
	return b.node.Location
}

// defaultCreateCycle is the behavior most variants inherit: simply paint
// on-cycle, producing no actions of its own (And, Clause, Call, Choice,
// BuiltIn never need bespoke cycle behavior — only Or, Define, and Not
// override this).
func (b *baseRecord) defaultCreateCycle() ([]action, error) {
	b.isOnCycle = true
	return nil, nil
}
