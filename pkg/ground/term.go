package ground

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Term is the closed set of term shapes the engine manipulates: a
// variable reference, a ground scalar, or a structured compound. Terms
// compiled into the database are read-only; the engine never mutates one
// in place.
type Term interface {
	fmt.Stringer
	isTerm()
}

var varCounter atomic.Int64

// Var is a reference to a logic variable, identified by a process-wide
// unique ID assigned at variable-creation time (clause or choice
// activation, or an explicit FreshVar call). Two Var values denote the same variable
// iff their IDs are equal; IDs are never reused, which lets independent
// executions share the counter safely (internal/batch runs several
// Engines concurrently).
type Var struct {
	ID int64
}

// FreshVar allocates a new, globally-unique unbound variable.
func FreshVar() Var {
	return Var{ID: varCounter.Add(1)}
}

func (Var) isTerm() {}
func (v Var) String() string {
	return fmt.Sprintf("_G%d", v.ID)
}

// Const is a ground scalar: an atom symbol, number, string, or similar.
type Const struct {
	Value interface{}
}

func (Const) isTerm() {}
func (c Const) String() string {
	return fmt.Sprintf("%v", c.Value)
}

// Compound is a structured term: a functor applied to a fixed arity of
// argument terms. Prolog-style lists are encoded as right-nested
// Compound(".", [Head, Tail]) chains terminated by EmptyList.
type Compound struct {
	Functor string
	Args    []Term
}

func (Compound) isTerm() {}
func (c Compound) String() string {
	if c.Functor == "." && len(c.Args) == 2 {
		return listString(c)
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Functor, strings.Join(parts, ", "))
}

func listString(c Compound) string {
	var b strings.Builder
	b.WriteByte('[')
	cur := Term(c)
	first := true
	for {
		cc, ok := cur.(Compound)
		if !ok || cc.Functor != "." || len(cc.Args) != 2 {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(cc.Args[0].String())
		cur = cc.Args[1]
	}
	if cn, ok := cur.(Const); !ok || cn.Value != "[]" {
		b.WriteString("|")
		b.WriteString(cur.String())
	}
	b.WriteByte(']')
	return b.String()
}

// EmptyList is the canonical terminator for list compounds.
var EmptyList Term = Const{Value: "[]"}

// Atom builds a zero-arity ground term (a Prolog atom or a bare scalar).
func Atom(value interface{}) Term {
	return Const{Value: value}
}

// List builds a Prolog-style cons-list from a slice of terms.
func List(items ...Term) Term {
	result := EmptyList
	for i := len(items) - 1; i >= 0; i-- {
		result = Compound{Functor: ".", Args: []Term{items[i], result}}
	}
	return result
}

// IsGround reports whether t contains no Var references.
func IsGround(t Term) bool {
	switch v := t.(type) {
	case Var:
		return false
	case Const:
		return true
	case Compound:
		for _, a := range v.Args {
			if !IsGround(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Functor returns the name and arity a call-site term would resolve
// against in the database (0 for a Const, len(Args) for a Compound).
func Functor(t Term) (name string, arity int) {
	switch v := t.(type) {
	case Const:
		return fmt.Sprintf("%v", v.Value), 0
	case Compound:
		return v.Functor, len(v.Args)
	default:
		return "", 0
	}
}
