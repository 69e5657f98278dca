package ground

import "fmt"

// Location identifies where a compiled database node originated, for
// diagnostics. There is no text parser in this repository, so locations
// are assigned at node-construction time by the Database builder rather
// than recovered from source text.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}
