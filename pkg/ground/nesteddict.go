package ground

import "fmt"

// canonicalArgs renders a Context into a stable string key, grounded on
// the teacher's CallPattern.canonicalizeTerm: position-based rendering
// so two structurally-equal goals hash identically regardless of which
// variable ids their still-free slots happen to carry. Free variables
// are rendered by their occurrence order within the call, not by ID, so
// that alpha-equivalent goals collide in the cache.
func canonicalArgs(args Context) string {
	seen := make(map[int64]int)
	var render func(Term) string
	render = func(t Term) string {
		switch v := t.(type) {
		case Var:
			idx, ok := seen[v.ID]
			if !ok {
				idx = len(seen)
				seen[v.ID] = idx
			}
			return fmt.Sprintf("$%d", idx)
		case Const:
			return fmt.Sprintf("c(%v)", v.Value)
		case Compound:
			s := v.Functor + "("
			for i, a := range v.Args {
				if i > 0 {
					s += ","
				}
				s += render(a)
			}
			return s + ")"
		default:
			return "?"
		}
	}
	out := ""
	for i, a := range args {
		if i > 0 {
			out += "|"
		}
		out += render(a)
	}
	return out
}

// goalKey identifies a (functor, arity, argument-shape) goal, the key
// granularity the definition cache's three maps (§3) are indexed by.
func goalKey(functor string, arity int, args Context) string {
	return fmt.Sprintf("%s/%d:%s", functor, arity, canonicalArgs(args))
}

// nestedKeyDict is a flat map keyed by the rendered (functor, arity,
// args) string — a trie-like lookup in spirit (the data model calls it
// a nested-key dictionary) collapsed to a single Go map for simplicity,
// since the three-part key is already fully determined before lookup.
type nestedKeyDict[V any] struct {
	m map[string]V
}

func newNestedKeyDict[V any]() *nestedKeyDict[V] {
	return &nestedKeyDict[V]{m: make(map[string]V)}
}

func (d *nestedKeyDict[V]) get(functor string, arity int, args Context) (V, bool) {
	v, ok := d.m[goalKey(functor, arity, args)]
	return v, ok
}

func (d *nestedKeyDict[V]) set(functor string, arity int, args Context, v V) {
	d.m[goalKey(functor, arity, args)] = v
}

func (d *nestedKeyDict[V]) delete(functor string, arity int, args Context) {
	delete(d.m, goalKey(functor, arity, args))
}
