package ground

// BuiltinHandler is the invocation contract every registered built-in
// implements (§4.2.9): given the already-instantiated call arguments and
// the addressing triple (parent slot, identifier, transform) a normal
// call would carry, produce the actions that report its outcome. A
// built-in is always one-shot — like Fact and Choice, it never owns an
// arena slot — so it returns either a single result (isLast=true) or a
// single complete.
type BuiltinHandler func(e *Engine, args Context, parent int, identifier interface{}, transform *Transform, loc Location) ([]action, error)

// dispatchBuiltin looks up id in the engine's registry and invokes it.
func dispatchBuiltin(e *Engine, id NodeID, args Context, parent int, identifier interface{}, transform *Transform, loc Location) ([]action, error) {
	h, ok := e.builtins[id]
	if !ok {
		return nil, &InvalidEngineStateError{Message: "call to unregistered built-in id"}
	}
	return h(e, args, parent, identifier, transform, loc)
}

// succeed reports a deterministic success of a one-shot built-in,
// folding completion into the result per the one-shot convention.
func succeed(parent int, result Context, gn GroundNode, identifier interface{}, transform *Transform) []action {
	out, ok := transform.Apply(result)
	if !ok {
		return []action{completeAction(parent, identifier)}
	}
	return []action{resultAction(parent, out, gn, identifier, true)}
}

// fail reports a deterministic failure of a one-shot built-in.
func fail(parent int, identifier interface{}) []action {
	return []action{completeAction(parent, identifier)}
}

// RegisterBuiltin installs a handler at a freshly allocated id at or
// below BuiltinUserBase and indexes it by functor/arity so a database builder
// can resolve calls to it ahead of time via BuiltinID.
func (e *Engine) RegisterBuiltin(functor string, arity int, h BuiltinHandler) NodeID {
	id := e.nextBuiltinID
	e.nextBuiltinID--
	e.builtins[id] = h
	e.builtinIndex[predKey(functor, arity)] = id
	return id
}

// BuiltinID resolves a registered built-in's id by functor/arity, for use
// by a database builder compiling a Call node.
func (e *Engine) BuiltinID(functor string, arity int) (NodeID, bool) {
	id, ok := e.builtinIndex[predKey(functor, arity)]
	return id, ok
}
