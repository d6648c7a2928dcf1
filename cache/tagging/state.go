// Package tagging maintains the tag, state, and replacement metadata of the
// cache lines in a set-associative cache.
package tagging

// State is the MESI coherence state of a cache line.
type State int

const (
	// StateInvalid marks a line that holds no meaningful tag or data.
	StateInvalid State = iota

	// StateShared marks a clean line that other caches may also hold.
	StateShared

	// StateExclusive marks a clean line held by exactly one cache.
	StateExclusive

	// StateModified marks a dirty line held by exactly one cache.
	StateModified
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "I"
	case StateShared:
		return "S"
	case StateExclusive:
		return "E"
	case StateModified:
		return "M"
	}

	return "?"
}
