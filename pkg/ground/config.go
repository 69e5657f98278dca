package ground

// UnknownPolicy governs what happens when a Call resolves to a def-node
// the database has no definition for (§4.5).
type UnknownPolicy int

const (
	// UnknownError surfaces UnknownClauseError out of Execute.
	UnknownError UnknownPolicy = iota
	// UnknownFail synthesizes a complete for the calling site, i.e. the
	// missing predicate behaves as if it simply has zero solutions.
	UnknownFail
)

// Config holds the driver-wide settings exposed by §6.
type Config struct {
	// Unknown selects the unknown-clause policy.
	Unknown UnknownPolicy `yaml:"unknown"`
	// LabelAll, when true, requests an AddName call for every result a
	// Define merges while it is on a cycle or a cycle parent (cosmetic
	// labeling of the ground DAG).
	LabelAll bool `yaml:"label_all"`
}

// DefaultConfig returns the engine's default settings: ERROR on unknown
// clauses, no automatic labeling.
func DefaultConfig() Config {
	return Config{Unknown: UnknownError, LabelAll: false}
}
