package ground

// actionKind tags the three-message protocol the trampoline drives.
type actionKind int

const (
	actCall actionKind = iota
	actResult
	actComplete
)

// action is one unit of work on the driver's LIFO queue. Only the
// fields relevant to Kind are populated.
type action struct {
	kind actionKind

	// call
	nodeID    NodeID
	callCtx   Context
	parent    int
	transform *Transform

	// result / complete addressing
	dest int

	// result
	result     Context
	groundNode GroundNode
	identifier interface{}
	isLast     bool
}

func callAction(nodeID NodeID, ctx Context, parent int, transform *Transform, identifier interface{}) action {
	return action{kind: actCall, nodeID: nodeID, callCtx: ctx, parent: parent, transform: transform, identifier: identifier}
}

func resultAction(dest int, result Context, gn GroundNode, identifier interface{}, isLast bool) action {
	return action{kind: actResult, dest: dest, result: result, groundNode: gn, identifier: identifier, isLast: isLast}
}

func completeAction(dest int, identifier interface{}) action {
	return action{kind: actComplete, dest: dest, identifier: identifier}
}
