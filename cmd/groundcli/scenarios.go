package main

import "github.com/avery-ng/probground/pkg/ground"

// scenario pairs a short name with a builder producing a self-contained
// database, a query def-node, and the query's (empty, for these ground
// queries) argument context — the seed cases from the specification's
// end-to-end scenario list, built directly against the clause-database
// builder since there is no surface syntax to parse them from.
type scenario struct {
	name        string
	description string
	build       func() (ground.Database, ground.NodeID, ground.Context)
}

var scenarios = []scenario{
	{"s1", "single fact: 0.3::a. query(a).", buildS1},
	{"s2", "conjunction/disjunction: r :- p,q. r :- p.", buildS2},
	{"s3", "negation over a ground goal: b :- \\+ a.", buildS3},
	{"s4", "positive cycle: p :- p.", buildS4},
	{"s5", "negative cycle: p :- \\+ p. (raises NegativeCycle)", buildS5},
	{"s6", "tabling: h :- g(1), g(1).", buildS6},
}

var noLoc = ground.Location{File: "demo", Line: 1}

func buildS1() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()
	db, fact := db.AddFact(nil, 0.3, noLoc)
	db, def := db.DefinePredicate("a", 0, noLoc)
	db = db.AddClauseToPredicate("a", 0, fact, noLoc)
	_ = def
	return db, def, ground.Context{}
}

func buildS2() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()

	db, pFact := db.AddFact(nil, 0.5, noLoc)
	db, pDef := db.DefinePredicate("p", 0, noLoc)
	db = db.AddClauseToPredicate("p", 0, pFact, noLoc)

	db, qFact := db.AddFact(nil, 0.5, noLoc)
	db, qDef := db.DefinePredicate("q", 0, noLoc)
	db = db.AddClauseToPredicate("q", 0, qFact, noLoc)

	db, callP1 := db.AddCall(nil, pDef, noLoc)
	db, callQ1 := db.AddCall(nil, qDef, noLoc)
	db, conj := db.AddConj([]ground.NodeID{callP1, callQ1}, noLoc)
	db, clause1 := db.AddClause(nil, conj, 0, noLoc)

	db, callP2 := db.AddCall(nil, pDef, noLoc)
	db, clause2 := db.AddClause(nil, callP2, 0, noLoc)

	db, rDef := db.DefinePredicate("r", 0, noLoc)
	db = db.AddClauseToPredicate("r", 0, clause1, noLoc)
	db = db.AddClauseToPredicate("r", 0, clause2, noLoc)

	return db, rDef, ground.Context{}
}

func buildS3() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()
	db, aFact := db.AddFact(nil, 0.2, noLoc)
	db, aDef := db.DefinePredicate("a", 0, noLoc)
	db = db.AddClauseToPredicate("a", 0, aFact, noLoc)

	db, callA := db.AddCall(nil, aDef, noLoc)
	db, neg := db.AddNeg(callA, noLoc)
	db, clauseB := db.AddClause(nil, neg, 0, noLoc)

	db, bDef := db.DefinePredicate("b", 0, noLoc)
	db = db.AddClauseToPredicate("b", 0, clauseB, noLoc)

	return db, bDef, ground.Context{}
}

func buildS4() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()
	db, pFact := db.AddFact(nil, 0.4, noLoc)
	db, pDef := db.DefinePredicate("p", 0, noLoc)
	db = db.AddClauseToPredicate("p", 0, pFact, noLoc)

	db, callP := db.AddCall(nil, pDef, noLoc)
	db, clauseP := db.AddClause(nil, callP, 0, noLoc)
	db = db.AddClauseToPredicate("p", 0, clauseP, noLoc)

	return db, pDef, ground.Context{}
}

func buildS5() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()
	db, pDef := db.DefinePredicate("p", 0, noLoc)

	db, callP := db.AddCall(nil, pDef, noLoc)
	db, neg := db.AddNeg(callP, noLoc)
	db, clauseP := db.AddClause(nil, neg, 0, noLoc)
	db = db.AddClauseToPredicate("p", 0, clauseP, noLoc)

	return db, pDef, ground.Context{}
}

func buildS6() (ground.Database, ground.NodeID, ground.Context) {
	db := ground.NewClauseDB()

	db, f1 := db.AddFact([]ground.Term{ground.Atom(1)}, 0.5, noLoc)
	db, f2 := db.AddFact([]ground.Term{ground.Atom(2)}, 0.5, noLoc)
	db, fDef := db.DefinePredicate("f", 1, noLoc)
	db = db.AddClauseToPredicate("f", 1, f1, noLoc)
	db = db.AddClauseToPredicate("f", 1, f2, noLoc)

	x := ground.Var{ID: 0}
	db, callF := db.AddCall([]ground.Term{x}, fDef, noLoc)
	db, clauseG := db.AddClause([]ground.Term{x}, callF, 1, noLoc)
	db, gDef := db.DefinePredicate("g", 1, noLoc)
	db = db.AddClauseToPredicate("g", 1, clauseG, noLoc)

	db, callG1 := db.AddCall([]ground.Term{ground.Atom(1)}, gDef, noLoc)
	db, callG2 := db.AddCall([]ground.Term{ground.Atom(1)}, gDef, noLoc)
	db, conjH := db.AddConj([]ground.NodeID{callG1, callG2}, noLoc)
	db, clauseH := db.AddClause(nil, conjH, 0, noLoc)
	db, hDef := db.DefinePredicate("h", 0, noLoc)
	db = db.AddClauseToPredicate("h", 0, clauseH, noLoc)

	return db, hDef, ground.Context{}
}
