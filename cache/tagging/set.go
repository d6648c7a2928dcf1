package tagging

import "sort"

// A Line is one way of a cache set. Only the tag, the coherence state, and
// the replacement counter matter; the block payload lives in main memory.
type Line struct {
	State State
	Tag   uint32
	LRU   uint64
}

// Valid returns true if the line is in any state other than Invalid.
func (l *Line) Valid() bool {
	return l.State != StateInvalid
}

// Dirty returns true if evicting the line requires a write-back.
func (l *Line) Dirty() bool {
	return l.State == StateModified
}

// A Set is one associative set of E lines. Recency is tracked with a
// monotone counter so that the line with the smallest LRU value is always
// the least recently used.
type Set struct {
	Lines   []Line
	nextLRU uint64
}

// NewSet creates a Set with the given associativity. All lines start
// Invalid.
func NewSet(associativity int) *Set {
	return &Set{
		Lines: make([]Line, associativity),
	}
}

// Find returns the way holding tag, or false if no valid line matches. The
// coherence protocol guarantees at most one match.
func (s *Set) Find(tag uint32) (int, bool) {
	for i := range s.Lines {
		if s.Lines[i].Valid() && s.Lines[i].Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// Touch marks the line at way as the most recently used in the set.
func (s *Set) Touch(way int) {
	if s.nextLRU == ^uint64(0) {
		s.renumber()
	}

	s.Lines[way].LRU = s.nextLRU
	s.nextLRU++
}

// NextLRU returns the counter value the next touched line will receive.
func (s *Set) NextLRU() uint64 {
	return s.nextLRU
}

// renumber compacts the LRU counters of all lines to their sorted rank so
// the counter can keep growing. Recency order is preserved.
func (s *Set) renumber() {
	ways := make([]int, len(s.Lines))
	for i := range ways {
		ways[i] = i
	}

	sort.Slice(ways, func(i, j int) bool {
		return s.Lines[ways[i]].LRU < s.Lines[ways[j]].LRU
	})

	for rank, way := range ways {
		s.Lines[way].LRU = uint64(rank)
	}

	s.nextLRU = uint64(len(s.Lines))
}
