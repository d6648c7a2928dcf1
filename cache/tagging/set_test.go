package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Set", func() {
	var set *Set

	BeforeEach(func() {
		set = NewSet(4)
	})

	It("should start with all lines invalid", func() {
		for i := range set.Lines {
			Expect(set.Lines[i].Valid()).To(BeFalse())
		}
	})

	It("should find a valid line by tag", func() {
		set.Lines[2] = Line{State: StateShared, Tag: 0x100}

		way, ok := set.Find(0x100)

		Expect(ok).To(BeTrue())
		Expect(way).To(Equal(2))
	})

	It("should not find an invalid line even if the tag matches", func() {
		set.Lines[1] = Line{State: StateInvalid, Tag: 0x100}

		_, ok := set.Find(0x100)

		Expect(ok).To(BeFalse())
	})

	It("should give touched lines strictly increasing counters", func() {
		set.Touch(0)
		set.Touch(3)
		set.Touch(1)

		Expect(set.Lines[0].LRU).To(BeNumerically("<", set.Lines[3].LRU))
		Expect(set.Lines[3].LRU).To(BeNumerically("<", set.Lines[1].LRU))
		Expect(set.NextLRU()).To(Equal(uint64(3)))
	})

	It("should preserve recency order when the counter overflows", func() {
		for i := range set.Lines {
			set.Lines[i].State = StateShared
		}

		set.Lines[0].LRU = ^uint64(0) - 4
		set.Lines[1].LRU = ^uint64(0) - 2
		set.Lines[2].LRU = ^uint64(0) - 3
		set.Lines[3].LRU = ^uint64(0) - 5
		set.nextLRU = ^uint64(0)

		set.Touch(2)

		Expect(set.Lines[3].LRU).To(Equal(uint64(0)))
		Expect(set.Lines[0].LRU).To(Equal(uint64(1)))
		Expect(set.Lines[1].LRU).To(Equal(uint64(3)))
		Expect(set.Lines[2].LRU).To(Equal(uint64(4)))
		Expect(set.NextLRU()).To(Equal(uint64(5)))
	})

	It("should report dirtiness only for modified lines", func() {
		line := Line{State: StateModified}
		Expect(line.Dirty()).To(BeTrue())

		line.State = StateExclusive
		Expect(line.Dirty()).To(BeFalse())
	})
})
