package ground

// activateClause implements §4.2.6. A clause needs no record of its
// own: it allocates a fresh local frame, unifies the caller's context
// against the head args, and — on success — dispatches straight to the
// body with the caller's own parent/identifier and a transform extended
// with substitute_head_args. Any results or completion the body produces
// flow directly to the clause's caller; there is nothing for a Clause
// record to accumulate or relay, so no arena slot is needed.
func activateClause(node *Node, parent int, ctx Context, identifier interface{}, transform *Transform) []action {
	frame := freshContext(node.VarCount)
	headArgs := renameArgs(node.HeadArgs, frame)

	b := newBindings()
	b, ok := unifyArgs(headArgs, ctx, b)
	if !ok {
		return []action{completeAction(parent, identifier)}
	}
	boundFrame := b.deepWalkContext(frame)

	bodyTransform := transform.Append(headSubstituteTransform(node.HeadArgs))
	return []action{callAction(node.Body, boundFrame, parent, bodyTransform, identifier)}
}
