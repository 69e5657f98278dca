package ground

import "strings"

// nocachePrefix marks a functor whose goals must never be memoized —
// each call re-evaluates in full, and the active-map cycle-detection
// machinery never sees it either.
const nocachePrefix = "_nocache_"

func isNocache(functor string) bool {
	return strings.HasPrefix(functor, nocachePrefix)
}

// DefinitionCache is the goal-indexed memoization layer described in the
// data model: three nested-key maps keyed by (functor, arity, args).
type DefinitionCache struct {
	ground    *nestedKeyDict[GroundNode]
	nonGround *nestedKeyDict[*ResultSet]
	active    *nestedKeyDict[*defineRecord]
}

// NewDefinitionCache returns an empty cache.
func NewDefinitionCache() *DefinitionCache {
	return &DefinitionCache{
		ground:    newNestedKeyDict[GroundNode](),
		nonGround: newNestedKeyDict[*ResultSet](),
		active:    newNestedKeyDict[*defineRecord](),
	}
}

// LookupGround resolves a fully-ground call directly, in O(1) regardless
// of the querying goal's grounding pattern — any goal that happens to
// be ground hits this table even if it was first tabled non-ground.
func (c *DefinitionCache) LookupGround(functor string, arity int, args Context) (GroundNode, bool) {
	if isNocache(functor) {
		return 0, false
	}
	return c.ground.get(functor, arity, args)
}

// LookupResults resolves a (possibly non-ground) goal to its cached
// result set.
func (c *DefinitionCache) LookupResults(functor string, arity int, args Context) (*ResultSet, bool) {
	if isNocache(functor) {
		return nil, false
	}
	return c.nonGround.get(functor, arity, args)
}

// Store writes both the result-set entry and, for every fully-ground
// result row, the ground-lookup shortcut.
func (c *DefinitionCache) Store(functor string, arity int, args Context, rs *ResultSet) {
	if isNocache(functor) {
		return
	}
	c.nonGround.set(functor, arity, args, rs)
	for _, e := range rs.Entries() {
		if e.Result.IsGround() {
			c.ground.set(functor, arity, e.Result, e.Collapsed)
		}
	}
}

// StoreFailure records that a ground goal has no solutions, so a later
// identical call resolves instantly to FALSE instead of re-evaluating.
func (c *DefinitionCache) StoreFailure(functor string, arity int, args Context) {
	if isNocache(functor) {
		return
	}
	if args.IsGround() {
		c.ground.set(functor, arity, args, FALSE)
	}
}

// Active returns the Define record currently servicing functor/args, if
// any — the cycle-detection table (§3's map 3).
func (c *DefinitionCache) Active(functor string, arity int, args Context) (*defineRecord, bool) {
	if isNocache(functor) {
		return nil, false
	}
	return c.active.get(functor, arity, args)
}

// SetActive registers rec as currently servicing functor/args.
func (c *DefinitionCache) SetActive(functor string, arity int, args Context, rec *defineRecord) {
	if isNocache(functor) {
		return
	}
	c.active.set(functor, arity, args, rec)
}

// ClearActive removes the active registration for functor/args — done
// the moment a Define completes and writes through to the result maps.
func (c *DefinitionCache) ClearActive(functor string, arity int, args Context) {
	c.active.delete(functor, arity, args)
}
