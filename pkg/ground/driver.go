package ground

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ExecResult is one top-level solution Execute reports: the caller's
// frame as bound by that solution, together with the ground node
// representing its contribution to the propositional formula.
type ExecResult struct {
	Bindings Context
	Node     GroundNode
}

// Engine is the driver that owns one evaluation: the read-only clause
// database, the ground-program sink, configuration, the built-in
// registry, and the mutable arena/cycle-root state a run accumulates.
// The definition cache lives on the target, not the engine, and is not
// locked: Engines that run concurrently share a database but each need
// their own target (see internal/batch, which gives every query a fresh
// GroundProgram).
type Engine struct {
	database Database
	target   GroundTarget
	config   Config

	builtins      map[NodeID]BuiltinHandler
	builtinIndex  map[string]NodeID
	nextBuiltinID NodeID

	arena     *arena
	cycleRoot *defineRecord
	stats     *Stats
	log       zerolog.Logger
}

// NewEngine returns a fresh engine over database/target, ready for
// Execute calls. Register any user built-ins (RegisterBuiltin /
// RegisterStandardBuiltins) before compiling a database that refers to
// their ids.
func NewEngine(database Database, target GroundTarget, config Config) *Engine {
	return &Engine{
		database:      database,
		target:        target,
		config:        config,
		builtins:      make(map[NodeID]BuiltinHandler),
		builtinIndex:  make(map[string]NodeID),
		nextBuiltinID: BuiltinUserBase,
		arena:         newArena(),
		stats:         &Stats{},
		log:           newLogger(false, false),
	}
}

// SetLogger overrides the engine's logger, e.g. to enable trace/debug
// output via newLogger(trace, debug) or to attach a caller-provided one.
func (e *Engine) SetLogger(l zerolog.Logger) { e.log = l }

// Stats returns the engine's running counters.
func (e *Engine) Stats() *Stats { return e.stats }

// subEngine returns a nested engine sharing database, target (and hence
// its cache), config and built-in registry, but with its own fresh
// arena and no cycle-root state — the vehicle for findall/3's exhaustive
// meta-call (§4.11), which genuinely needs an independent trampoline run
// to completion rather than a slot in the caller's.
func (e *Engine) subEngine() *Engine {
	return &Engine{
		database:      e.database,
		target:        e.target,
		config:        e.config,
		builtins:      e.builtins,
		builtinIndex:  e.builtinIndex,
		nextBuiltinID: e.nextBuiltinID,
		arena:         newArena(),
		stats:         e.stats,
		log:           e.log,
	}
}

// Execute runs goal/args to exhaustion and returns every top-level
// solution found. It drives the LIFO action deque described in §5: pop
// the most recently pushed action, dispatch it, push whatever actions it
// produces, repeat until the deque is empty. Top-level results and the
// final completion are recognized by addressing to the outer-caller
// sentinel slot (⊥) rather than any arena record.
func (e *Engine) Execute(goal NodeID, args Context) ([]ExecResult, error) {
	queue := []action{callAction(goal, args, botPtr, nil, nil)}
	var results []ExecResult

	for len(queue) > 0 {
		act := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		e.log.Trace().Int("kind", int(act.kind)).Int64("node", int64(act.nodeID)).Int("parent", act.parent).Int("dest", act.dest).Msg("action")

		// §4.1 step 3: a call whose parent predates the open cycle root
		// must force that root to close before the call can proceed —
		// otherwise the root would wait forever for a child that will
		// never arrive. Re-queue the call underneath the close actions
		// so they run first.
		if act.kind == actCall && e.cycleRoot != nil && act.parent != botPtr && act.parent < e.cycleRoot.ptr {
			queue = append(queue, act)
			queue = append(queue, reverseActions(e.cycleRoot.closeCycle())...)
			continue
		}

		var next []action
		var err error

		switch act.kind {
		case actCall:
			e.stats.recordCall()
			next, err = e.dispatchCall(act)

		case actResult:
			e.stats.recordResult()
			if act.dest == botPtr {
				results = append(results, ExecResult{Bindings: act.result, Node: act.groundNode})
				continue
			}
			rec := e.arena.get(act.dest)
			if rec == nil {
				continue
			}
			var cleanup bool
			cleanup, next = rec.onResult(e, act)
			if cleanup {
				e.arena.free(act.dest)
			}

		case actComplete:
			e.stats.recordComplete()
			if act.dest == botPtr {
				continue
			}
			rec := e.arena.get(act.dest)
			if rec == nil {
				continue
			}
			var cleanup bool
			cleanup, next = rec.onComplete(e, act)
			if cleanup {
				e.arena.free(act.dest)
			}
		}

		if err != nil {
			return nil, err
		}
		// Actions are appended reversed so the LIFO pop restores the
		// producer's intended order: a handler returning [a, b, c]
		// means a should run next, then b, then c.
		queue = append(queue, reverseActions(next)...)

		// §4.1 step 6: if the queue would otherwise drain while a cycle
		// root is still open, force it closed rather than returning
		// with unfinished cycle children.
		if len(queue) == 0 && e.cycleRoot != nil {
			queue = append(queue, reverseActions(e.cycleRoot.closeCycle())...)
		}
	}

	e.arena.shrink()
	return results, nil
}

// reverseActions returns a new slice with acts in reverse order, used
// wherever a batch of actions is pushed onto the LIFO queue so popping
// from the back restores the order the producer intended.
func reverseActions(acts []action) []action {
	if len(acts) == 0 {
		return nil
	}
	out := make([]action, len(acts))
	for i, a := range acts {
		out[len(acts)-1-i] = a
	}
	return out
}

// dispatchCall resolves act.nodeID to a compiled Node and activates the
// record (or one-shot handler) matching its Kind.
func (e *Engine) dispatchCall(act action) ([]action, error) {
	node, ok := e.database.GetNode(act.nodeID)
	if !ok {
		return nil, &InvalidEngineStateError{Message: fmt.Sprintf("call to unresolved node id %d", act.nodeID)}
	}
	switch node.Kind {
	case KindFact:
		return activateFact(node, act.parent, act.callCtx, act.identifier, act.transform, e.target), nil
	case KindConj:
		return activateAnd(e, node, act.parent, act.callCtx, act.identifier, act.transform), nil
	case KindDisj:
		return activateOr(e, node, act.parent, act.callCtx, act.identifier, act.transform), nil
	case KindNeg:
		return activateNot(e, node, act.parent, act.callCtx, act.identifier, act.transform), nil
	case KindDefine:
		return activateDefine(e, node, act.parent, act.callCtx, act.identifier, act.transform)
	case KindClause:
		return activateClause(node, act.parent, act.callCtx, act.identifier, act.transform), nil
	case KindCall:
		return activateCall(e, node, act.parent, act.callCtx, act.identifier, act.transform)
	case KindChoice:
		return activateChoice(node, act.parent, act.callCtx, act.identifier, act.transform, e.target)
	case KindBuiltIn:
		return dispatchBuiltin(e, node.BuiltinID, act.callCtx, act.parent, act.identifier, act.transform, node.Location)
	default:
		return nil, &InvalidEngineStateError{Message: "unknown node kind in dispatch"}
	}
}
