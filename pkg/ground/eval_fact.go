package ground

// activateFact implements §4.2.1: unify the fact's head args against the
// caller context. Facts are one-shot — no arena slot is allocated —
// so success or failure is reported immediately as the return value of
// activation.
func activateFact(node *Node, parent int, ctx Context, identifier interface{}, transform *Transform, target GroundTarget) []action {
	b := newBindings()
	b, ok := unifyArgs(node.FactArgs, ctx, b)
	if !ok {
		return []action{completeAction(parent, identifier)}
	}
	bound := b.deepWalkContext(ctx)
	atomNode := target.AddAtom(node, node.FactProbability, nil)
	out, ok := transform.Apply(bound)
	if !ok {
		return []action{completeAction(parent, identifier)}
	}
	return []action{resultAction(parent, out, atomNode, identifier, true)}
}
