package ground

// activateChoice implements §4.2.8: one atom of an annotated disjunction.
// The probability, once instantiated against the caller context, must
// be ground, otherwise evaluation aborts with
// NonGroundProbabilisticClauseError. The arguments are not checked for
// groundness. One-shot, like Fact.
func activateChoice(node *Node, parent int, ctx Context, identifier interface{}, transform *Transform, target GroundTarget) ([]action, error) {
	frame := freshContext(node.ChoiceVarCount)
	args := renameArgs(node.ChoiceArgs, frame)

	b := newBindings()
	b, ok := unifyArgs(args, ctx, b)
	if !ok {
		return []action{completeAction(parent, identifier)}, nil
	}
	bound := b.deepWalkContext(ctx)

	prob := rename(node.ChoiceProbability, frame)
	prob = b.deepWalk(prob)
	if !IsGround(prob) {
		return nil, &NonGroundProbabilisticClauseError{Location: node.Location}
	}

	probValue, _ := termAsFloat(prob)
	key := choiceKey{group: node.ChoiceGroup, index: node.ChoiceIndex}
	atomNode := target.AddAtom(key, probValue, node.ChoiceGroup)

	out, ok := transform.Apply(bound)
	if !ok {
		return []action{completeAction(parent, identifier)}, nil
	}
	return []action{resultAction(parent, out, atomNode, identifier, true)}, nil
}

// choiceKey is the atom key an annotated-disjunction alternative is
// registered under: the group it belongs to plus its index within that
// group.
type choiceKey struct {
	group string
	index int
}

func termAsFloat(t Term) (float64, bool) {
	c, ok := t.(Const)
	if !ok {
		return 0, false
	}
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
