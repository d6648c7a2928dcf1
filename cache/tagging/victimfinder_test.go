package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUVictimFinder", func() {
	var (
		set *Set
		vf  *LRUVictimFinder
	)

	BeforeEach(func() {
		set = NewSet(2)
		vf = NewLRUVictimFinder()
	})

	It("should pick way 0 when all lines are invalid", func() {
		Expect(vf.FindVictim(set)).To(Equal(0))
	})

	It("should prefer an invalid line over the LRU line", func() {
		set.Lines[0] = Line{State: StateModified, Tag: 0x1}
		set.Touch(0)

		Expect(vf.FindVictim(set)).To(Equal(1))
	})

	It("should evict the least recently used valid line", func() {
		set.Lines[0] = Line{State: StateExclusive, Tag: 0x1}
		set.Lines[1] = Line{State: StateShared, Tag: 0x2}
		set.Touch(1)
		set.Touch(0)

		Expect(vf.FindVictim(set)).To(Equal(1))
	})
})
