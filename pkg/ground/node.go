package ground

// NodeID addresses a compiled database node. Well-known built-ins live
// at small negative ids reserved by the driver (see builtin ids below);
// user-registered built-ins live at ids at or below BuiltinUserBase.
type NodeID int64

// Sentinel built-in node ids, mirroring the source's well-known
// built-in def-node ids (§4.2.7).
const (
	NodeNone        NodeID = 0
	NodeTrueBuiltin NodeID = -1
	NodeFailBuiltin NodeID = -2
	NodeNotEqBuiltin NodeID = -3
	NodeFindallBuiltin NodeID = -4
	// BuiltinUserBase is the first id available to user-registered
	// built-ins; registration allocates downward from here.
	BuiltinUserBase NodeID = -1000
)

// NodeKind is the closed tag set for compiled database nodes.
type NodeKind int

const (
	KindFact NodeKind = iota
	KindConj
	KindDisj
	KindNeg
	KindDefine
	KindCall
	KindClause
	KindChoice
	KindBuiltIn
)

func (k NodeKind) String() string {
	switch k {
	case KindFact:
		return "Fact"
	case KindConj:
		return "Conj"
	case KindDisj:
		return "Disj"
	case KindNeg:
		return "Neg"
	case KindDefine:
		return "Define"
	case KindCall:
		return "Call"
	case KindClause:
		return "Clause"
	case KindChoice:
		return "Choice"
	case KindBuiltIn:
		return "BuiltIn"
	default:
		return "?"
	}
}

// Node is the compiled, read-only database node. Only the fields
// relevant to its Kind are populated; the driver dispatches on Kind to
// the matching record constructor (node.go's variant data is a tagged
// union, not a set of Go interfaces, per the design notes' preference
// for explicit tagging over virtual dispatch on a small closed set).
type Node struct {
	Kind     NodeKind
	Location Location

	// Fact
	FactArgs        []Term
	FactProbability float64

	// Conj / Disj: ordered child node ids
	Children []NodeID

	// Neg: single child
	Child NodeID

	// Define
	Functor  string
	Arity    int
	Clauses  []NodeID // candidate clause node ids, in database order

	// Clause
	HeadArgs []Term
	Body     NodeID
	VarCount int

	// Call
	CallArgs    []Term
	CallTarget  NodeID
	CallFunctor string // for diagnostics when CallTarget is unresolved
	CallArity   int

	// Choice
	ChoiceProbability Term // may contain local vars, instantiated at activation
	ChoiceGroup       string
	ChoiceIndex       int
	ChoiceArgs        []Term
	ChoiceVarCount    int

	// BuiltIn: negative id into the registry, resolved by the driver
	BuiltinID NodeID
}
