package ground

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var driverTestLoc = Location{File: "driver_test", Line: 1}

// S1 — single fact.
func TestExecuteSingleFact(t *testing.T) {
	db := NewClauseDB()
	db, fact := db.AddFact(nil, 0.3, driverTestLoc)
	db, def := db.DefinePredicate("a", 0, driverTestLoc)
	db = db.AddClauseToPredicate("a", 0, fact, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	results, err := engine.Execute(def, Context{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, GroundNode(1), results[0].Node)
}

// S2 — conjunction and disjunction: r :- p, q. r :- p.
func TestExecuteConjunctionDisjunction(t *testing.T) {
	db := NewClauseDB()

	db, pFact := db.AddFact(nil, 0.5, driverTestLoc)
	db, pDef := db.DefinePredicate("p", 0, driverTestLoc)
	db = db.AddClauseToPredicate("p", 0, pFact, driverTestLoc)

	db, qFact := db.AddFact(nil, 0.5, driverTestLoc)
	db, qDef := db.DefinePredicate("q", 0, driverTestLoc)
	db = db.AddClauseToPredicate("q", 0, qFact, driverTestLoc)

	db, callP1 := db.AddCall(nil, pDef, driverTestLoc)
	db, callQ1 := db.AddCall(nil, qDef, driverTestLoc)
	db, conj := db.AddConj([]NodeID{callP1, callQ1}, driverTestLoc)
	db, clause1 := db.AddClause(nil, conj, 0, driverTestLoc)

	db, callP2 := db.AddCall(nil, pDef, driverTestLoc)
	db, clause2 := db.AddClause(nil, callP2, 0, driverTestLoc)

	db, rDef := db.DefinePredicate("r", 0, driverTestLoc)
	db = db.AddClauseToPredicate("r", 0, clause1, driverTestLoc)
	db = db.AddClauseToPredicate("r", 0, clause2, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	results, err := engine.Execute(rDef, Context{})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

// S3 — negation over a ground goal: b :- \+ a.
func TestExecuteNegationGround(t *testing.T) {
	db := NewClauseDB()
	db, aFact := db.AddFact(nil, 0.2, driverTestLoc)
	db, aDef := db.DefinePredicate("a", 0, driverTestLoc)
	db = db.AddClauseToPredicate("a", 0, aFact, driverTestLoc)

	db, callA := db.AddCall(nil, aDef, driverTestLoc)
	db, neg := db.AddNeg(callA, driverTestLoc)
	db, clauseB := db.AddClause(nil, neg, 0, driverTestLoc)

	db, bDef := db.DefinePredicate("b", 0, driverTestLoc)
	db = db.AddClauseToPredicate("b", 0, clauseB, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	results, err := engine.Execute(bDef, Context{})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

// S4 — positive cycle: p :- p. terminates and produces a self-disjunct.
func TestExecutePositiveCycle(t *testing.T) {
	db := NewClauseDB()
	db, pFact := db.AddFact(nil, 0.4, driverTestLoc)
	db, pDef := db.DefinePredicate("p", 0, driverTestLoc)
	db = db.AddClauseToPredicate("p", 0, pFact, driverTestLoc)

	db, callP := db.AddCall(nil, pDef, driverTestLoc)
	db, clauseP := db.AddClause(nil, callP, 0, driverTestLoc)
	db = db.AddClauseToPredicate("p", 0, clauseP, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	results, err := engine.Execute(pDef, Context{})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

// S5 — negative cycle: p :- \+ p. must raise NegativeCycleError.
func TestExecuteNegativeCycle(t *testing.T) {
	db := NewClauseDB()
	db, pDef := db.DefinePredicate("p", 0, driverTestLoc)

	db, callP := db.AddCall(nil, pDef, driverTestLoc)
	db, neg := db.AddNeg(callP, driverTestLoc)
	db, clauseP := db.AddClause(nil, neg, 0, driverTestLoc)
	db = db.AddClauseToPredicate("p", 0, clauseP, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	_, err := engine.Execute(pDef, Context{})
	require.Error(t, err)
	var negCycle *NegativeCycleError
	require.ErrorAs(t, err, &negCycle)
}

// S6 — tabling: h :- g(1), g(1). exactly one f(1) atom is created.
func TestExecuteTablingReusesCache(t *testing.T) {
	db := NewClauseDB()

	db, f1 := db.AddFact([]Term{Atom(1)}, 0.5, driverTestLoc)
	db, f2 := db.AddFact([]Term{Atom(2)}, 0.5, driverTestLoc)
	db, fDef := db.DefinePredicate("f", 1, driverTestLoc)
	db = db.AddClauseToPredicate("f", 1, f1, driverTestLoc)
	db = db.AddClauseToPredicate("f", 1, f2, driverTestLoc)

	x := Var{ID: 0}
	db, callF := db.AddCall([]Term{x}, fDef, driverTestLoc)
	db, clauseG := db.AddClause([]Term{x}, callF, 1, driverTestLoc)
	db, gDef := db.DefinePredicate("g", 1, driverTestLoc)
	db = db.AddClauseToPredicate("g", 1, clauseG, driverTestLoc)

	db, callG1 := db.AddCall([]Term{Atom(1)}, gDef, driverTestLoc)
	db, callG2 := db.AddCall([]Term{Atom(1)}, gDef, driverTestLoc)
	db, conjH := db.AddConj([]NodeID{callG1, callG2}, driverTestLoc)
	db, clauseH := db.AddClause(nil, conjH, 0, driverTestLoc)
	db, hDef := db.DefinePredicate("h", 0, driverTestLoc)
	db = db.AddClauseToPredicate("h", 0, clauseH, driverTestLoc)

	target := NewGroundProgram()
	engine := NewEngine(db, target, DefaultConfig())

	results, err := engine.Execute(hDef, Context{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	f1Node, ok := db.GetNode(f1)
	require.True(t, ok)

	atomCount := 0
	for _, n := range target.nodes {
		if n.kind == formAtom && n.key == f1Node {
			atomCount++
		}
	}
	require.Equal(t, 1, atomCount, "f(1) should be memoized, not re-evaluated")
}

// Determinism: two independent runs against fresh targets produce the
// same solution count and the same top-level bindings.
func TestExecuteDeterministic(t *testing.T) {
	build := func() (Database, NodeID) {
		db := NewClauseDB()
		db, pFact := db.AddFact(nil, 0.5, driverTestLoc)
		db, pDef := db.DefinePredicate("p", 0, driverTestLoc)
		db = db.AddClauseToPredicate("p", 0, pFact, driverTestLoc)
		return db, pDef
	}

	db1, def1 := build()
	r1, err1 := NewEngine(db1, NewGroundProgram(), DefaultConfig()).Execute(def1, Context{})
	require.NoError(t, err1)

	db2, def2 := build()
	r2, err2 := NewEngine(db2, NewGroundProgram(), DefaultConfig()).Execute(def2, Context{})
	require.NoError(t, err2)

	require.Equal(t, len(r1), len(r2))
	for i := range r1 {
		require.Equal(t, r1[i].Bindings, r2[i].Bindings)
	}
}

// Arena invariant: top-level Execute always leaves the arena empty.
func TestExecuteArenaInvariant(t *testing.T) {
	db := NewClauseDB()
	db, pFact := db.AddFact(nil, 0.5, driverTestLoc)
	db, pDef := db.DefinePredicate("p", 0, driverTestLoc)
	db = db.AddClauseToPredicate("p", 0, pFact, driverTestLoc)

	engine := NewEngine(db, NewGroundProgram(), DefaultConfig())
	_, err := engine.Execute(pDef, Context{})
	require.NoError(t, err)
	require.Equal(t, 0, engine.arena.pointer)
	for _, slot := range engine.arena.slots {
		require.Nil(t, slot)
	}
}

// Unknown-clause policy: FAIL mode yields zero solutions for a missing
// predicate instead of erroring.
func TestExecuteUnknownClauseFailPolicy(t *testing.T) {
	db := NewClauseDB()
	db, callMissing := db.AddCall(nil, NodeID(999), driverTestLoc)
	db, clause := db.AddClause(nil, callMissing, 0, driverTestLoc)
	db, def := db.DefinePredicate("q", 0, driverTestLoc)
	db = db.AddClauseToPredicate("q", 0, clause, driverTestLoc)

	cfg := DefaultConfig()
	cfg.Unknown = UnknownFail
	engine := NewEngine(db, NewGroundProgram(), cfg)
	results, err := engine.Execute(def, Context{})
	require.NoError(t, err)
	require.Len(t, results, 0)
}

// Unknown-clause policy: ERROR mode raises UnknownClauseError.
func TestExecuteUnknownClauseErrorPolicy(t *testing.T) {
	db := NewClauseDB()
	db, callMissing := db.AddCall(nil, NodeID(999), driverTestLoc)
	db, clause := db.AddClause(nil, callMissing, 0, driverTestLoc)
	db, def := db.DefinePredicate("q", 0, driverTestLoc)
	db = db.AddClauseToPredicate("q", 0, clause, driverTestLoc)

	engine := NewEngine(db, NewGroundProgram(), DefaultConfig())
	_, err := engine.Execute(def, Context{})
	require.Error(t, err)
	var unknown *UnknownClauseError
	require.ErrorAs(t, err, &unknown)
}
