package ground

import "fmt"

// Database is the consumed collaborator (§6) that resolves a query term
// to a def-node id, fetches compiled nodes by id, and maps a source
// location to a diagnostic triple. The interpreter treats it as
// read-only for the duration of an Execute call.
type Database interface {
	Find(functor string, arity int) (NodeID, bool)
	GetNode(id NodeID) (*Node, bool)
	Lineno(loc Location) (file string, line, col int)
}

// ClauseDB is an in-memory, immutable, copy-on-write Database, playing
// the role the teacher's pldb.Database plays for fact storage: every
// mutating builder method returns a new *ClauseDB with its own copy of
// the node slice and index (the *Node values themselves are shared),
// rather than mutating shared state in place.
type ClauseDB struct {
	nodes []*Node              // index 0 unused; NodeID(i) -> nodes[i]
	index map[string]NodeID    // "functor/arity" -> Define node id
}

// NewClauseDB returns an empty database.
func NewClauseDB() *ClauseDB {
	return &ClauseDB{
		nodes: make([]*Node, 1),
		index: make(map[string]NodeID),
	}
}

func predKey(functor string, arity int) string {
	return fmt.Sprintf("%s/%d", functor, arity)
}

func (db *ClauseDB) clone() *ClauseDB {
	nodes := make([]*Node, len(db.nodes))
	copy(nodes, db.nodes)
	index := make(map[string]NodeID, len(db.index))
	for k, v := range db.index {
		index[k] = v
	}
	return &ClauseDB{nodes: nodes, index: index}
}

func (db *ClauseDB) addNode(n *Node) (*ClauseDB, NodeID) {
	nd := db.clone()
	id := NodeID(len(nd.nodes))
	nd.nodes = append(nd.nodes, n)
	return nd, id
}

// Find implements Database.
func (db *ClauseDB) Find(functor string, arity int) (NodeID, bool) {
	id, ok := db.index[predKey(functor, arity)]
	return id, ok
}

// GetNode implements Database.
func (db *ClauseDB) GetNode(id NodeID) (*Node, bool) {
	if id <= 0 || int(id) >= len(db.nodes) {
		return nil, false
	}
	n := db.nodes[id]
	return n, n != nil
}

// Lineno implements Database.
func (db *ClauseDB) Lineno(loc Location) (string, int, int) {
	return loc.File, loc.Line, loc.Col
}

// AddFact registers a probabilistic fact (args ground or templated) and
// returns the new database plus the fact node's id.
func (db *ClauseDB) AddFact(args []Term, probability float64, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{
		Kind:            KindFact,
		FactArgs:        args,
		FactProbability: probability,
		Location:        loc,
	})
}

// AddConj registers a conjunction over children, in order. More than
// two children are folded into a right-nested chain of binary Conj
// nodes, since a Conj node evaluates exactly two children.
func (db *ClauseDB) AddConj(children []NodeID, loc Location) (*ClauseDB, NodeID) {
	if len(children) > 2 {
		var rest NodeID
		db, rest = db.AddConj(children[1:], loc)
		children = []NodeID{children[0], rest}
	}
	return db.addNode(&Node{Kind: KindConj, Children: children, Location: loc})
}

// AddDisj registers a disjunction over children, in order.
func (db *ClauseDB) AddDisj(children []NodeID, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{Kind: KindDisj, Children: children, Location: loc})
}

// AddNeg registers a negation over a single child.
func (db *ClauseDB) AddNeg(child NodeID, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{Kind: KindNeg, Child: child, Location: loc})
}

// AddClause registers a clause body: a fresh frame of varCount local
// variables, headArgs expressed in that frame's numbering, and a body
// child (itself expressed in the same frame).
func (db *ClauseDB) AddClause(headArgs []Term, body NodeID, varCount int, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{
		Kind:     KindClause,
		HeadArgs: headArgs,
		Body:     body,
		VarCount: varCount,
		Location: loc,
	})
}

// AddCall registers a call site: args expressed in the calling clause's
// local frame, resolved against a target def-node (or a negative
// built-in id).
func (db *ClauseDB) AddCall(args []Term, target NodeID, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{Kind: KindCall, CallArgs: args, CallTarget: target, Location: loc})
}

// AddChoice registers one atom of an annotated disjunction.
func (db *ClauseDB) AddChoice(probability Term, group string, index int, args []Term, varCount int, loc Location) (*ClauseDB, NodeID) {
	return db.addNode(&Node{
		Kind:              KindChoice,
		ChoiceProbability: probability,
		ChoiceGroup:       group,
		ChoiceIndex:       index,
		ChoiceArgs:        args,
		ChoiceVarCount:    varCount,
		Location:          loc,
	})
}

// DefinePredicate creates (or returns the existing) Define node for
// functor/arity, so clauses can be attached to it incrementally via
// AddClauseToPredicate.
func (db *ClauseDB) DefinePredicate(functor string, arity int, loc Location) (*ClauseDB, NodeID) {
	if id, ok := db.Find(functor, arity); ok {
		return db, id
	}
	nd := db.clone()
	id := NodeID(len(nd.nodes))
	nd.nodes = append(nd.nodes, &Node{Kind: KindDefine, Functor: functor, Arity: arity, Location: loc})
	nd.index[predKey(functor, arity)] = id
	return nd, id
}

// AddClauseToPredicate appends clauseID to the ordered candidate-clause
// list of the Define node for functor/arity, auto-creating the Define
// node if it does not yet exist.
func (db *ClauseDB) AddClauseToPredicate(functor string, arity int, clauseID NodeID, loc Location) *ClauseDB {
	nd, id := db.DefinePredicate(functor, arity, loc)
	nd = nd.clone()
	def := *nd.nodes[id]
	def.Clauses = append(append([]NodeID{}, def.Clauses...), clauseID)
	nd.nodes[id] = &def
	return nd
}
