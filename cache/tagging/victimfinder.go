package tagging

// A VictimFinder decides which way of a set should be evicted.
type VictimFinder interface {
	FindVictim(set *Set) int
}

// LRUVictimFinder selects the least recently used way to evict.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns an invalid way if one exists, otherwise the way with
// the smallest LRU counter.
func (e *LRUVictimFinder) FindVictim(set *Set) int {
	for i := range set.Lines {
		if !set.Lines[i].Valid() {
			return i
		}
	}

	victim := 0
	for i := 1; i < len(set.Lines); i++ {
		if set.Lines[i].LRU < set.Lines[victim].LRU {
			victim = i
		}
	}

	return victim
}
