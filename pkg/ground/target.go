package ground

import "fmt"

// GroundNode addresses a node in the propositional ground DAG produced
// by a GroundTarget. TRUE and FALSE are reserved sentinels used for
// identity shortcuts throughout the evaluator.
type GroundNode int64

const (
	// TRUE is the sentinel ground node representing a vacuously true atom.
	TRUE GroundNode = 0
	// FALSE is the sentinel ground node representing failure.
	FALSE GroundNode = -1
)

// GroundTarget is the consumed sink interface (§4.7): the engine never
// inspects the DAG it builds, only appends to it through these methods.
type GroundTarget interface {
	AddAtom(key interface{}, probability float64, group interface{}) GroundNode
	AddAnd(a, b GroundNode) GroundNode
	AddOr(nodes []GroundNode, readonly bool) GroundNode
	AddDisjunct(or GroundNode, child GroundNode) GroundNode
	AddNot(n GroundNode) GroundNode
	AddName(name string, n GroundNode, label string)

	// Cache hosts the definition cache — the Go equivalent of the
	// source's dynamic `_cache` attribute, lazily created on first access
	// and kept for the target's lifetime, so successive Execute calls
	// against the same target share it.
	Cache() *DefinitionCache
}

type formulaKind int

const (
	formAtom formulaKind = iota
	formAnd
	formOr
	formNot
)

type formulaNode struct {
	kind        formulaKind
	key         interface{}
	probability float64
	group       interface{}
	and         [2]GroundNode
	or          []GroundNode
	orReadonly  bool
	not         GroundNode
}

// GroundProgram is the provided in-memory implementation of GroundTarget:
// an append-only formula-node table, mirroring how the teacher's pldb
// stores facts — index 0 reserved for TRUE.
type GroundProgram struct {
	nodes []formulaNode
	names []namedNode
	cache *DefinitionCache
}

type namedNode struct {
	Name  string
	Node  GroundNode
	Label string
}

// NewGroundProgram returns an empty ground program.
func NewGroundProgram() *GroundProgram {
	gp := &GroundProgram{nodes: make([]formulaNode, 1)}
	gp.nodes[0] = formulaNode{kind: formAtom, key: "true", probability: 1}
	return gp
}

func (gp *GroundProgram) append(n formulaNode) GroundNode {
	id := GroundNode(len(gp.nodes))
	gp.nodes = append(gp.nodes, n)
	return id
}

// AddAtom implements GroundTarget.
func (gp *GroundProgram) AddAtom(key interface{}, probability float64, group interface{}) GroundNode {
	return gp.append(formulaNode{kind: formAtom, key: key, probability: probability, group: group})
}

// AddAnd implements GroundTarget.
func (gp *GroundProgram) AddAnd(a, b GroundNode) GroundNode {
	if a == TRUE {
		return b
	}
	if b == TRUE {
		return a
	}
	if a == FALSE || b == FALSE {
		return FALSE
	}
	return gp.append(formulaNode{kind: formAnd, and: [2]GroundNode{a, b}})
}

// AddOr implements GroundTarget. A readonly disjunction of a single node
// is that node itself; no Or node is allocated for it.
func (gp *GroundProgram) AddOr(nodes []GroundNode, readonly bool) GroundNode {
	if readonly && len(nodes) == 1 {
		return nodes[0]
	}
	cp := append([]GroundNode{}, nodes...)
	return gp.append(formulaNode{kind: formOr, or: cp, orReadonly: readonly})
}

// AddDisjunct implements GroundTarget.
func (gp *GroundProgram) AddDisjunct(or GroundNode, child GroundNode) GroundNode {
	n := &gp.nodes[or]
	if n.kind != formOr {
		panic(fmt.Sprintf("AddDisjunct on non-Or node %d", or))
	}
	if n.orReadonly {
		panic(fmt.Sprintf("AddDisjunct on readonly Or node %d", or))
	}
	n.or = append(n.or, child)
	return or
}

// AddNot implements GroundTarget.
func (gp *GroundProgram) AddNot(n GroundNode) GroundNode {
	if n == TRUE {
		return FALSE
	}
	if n == FALSE {
		return TRUE
	}
	return gp.append(formulaNode{kind: formNot, not: n})
}

// AddName implements GroundTarget.
func (gp *GroundProgram) AddName(name string, n GroundNode, label string) {
	gp.names = append(gp.names, namedNode{Name: name, Node: n, Label: label})
}

// Cache implements GroundTarget, lazily creating the definition cache.
func (gp *GroundProgram) Cache() *DefinitionCache {
	if gp.cache == nil {
		gp.cache = NewDefinitionCache()
	}
	return gp.cache
}

// FreezeOr marks a mutable Or node readonly, so that later AddDisjunct
// calls on it panic. The engine itself never calls it.
func (gp *GroundProgram) FreezeOr(n GroundNode) {
	gp.nodes[n].orReadonly = true
}
