package bus

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/mesisim/sim"
)

type txRecorder struct {
	ctxs []sim.HookCtx
}

func (r *txRecorder) Func(ctx sim.HookCtx) {
	r.ctxs = append(r.ctxs, ctx)
}

var _ = Describe("Bus", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		peer1      *MockSnooper
		peer2      *MockSnooper
		b          *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		timeTeller = NewMockTimeTeller(mockCtrl)
		timeTeller.EXPECT().CurrentCycle().Return(uint64(10)).AnyTimes()

		peer1 = NewMockSnooper(mockCtrl)
		peer1.EXPECT().CoreID().Return(1).AnyTimes()
		peer2 = NewMockSnooper(mockCtrl)
		peer2.EXPECT().CoreID().Return(2).AnyTimes()

		b = MakeBuilder().
			WithTimeTeller(timeTeller).
			WithBlockSize(16).
			Build()
		b.Connect(peer1)
		b.Connect(peer2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should fetch from memory when no peer has the block", func() {
		peer1.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{})
		peer2.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{})

		result := b.Issue(BusRd, 0x2000, 0)

		Expect(result.Shared).To(BeFalse())
		Expect(result.Provided).To(BeFalse())
		Expect(result.SourceCore).To(Equal(-1))
		Expect(result.Cycles).To(Equal(uint64(100)))
		Expect(b.TrafficBytes()).To(Equal(uint64(16)))
		Expect(b.BusyUntil()).To(Equal(uint64(110)))
	})

	It("should record the first provider in ascending core order", func() {
		peer1.EXPECT().Snoop(gomock.Any()).
			Return(SnoopResult{HadCopy: true, Provided: true})
		peer2.EXPECT().Snoop(gomock.Any()).
			Return(SnoopResult{HadCopy: true, Provided: true})

		result := b.Issue(BusRd, 0x2000, 0)

		Expect(result.Provided).To(BeTrue())
		Expect(result.SourceCore).To(Equal(1))
		Expect(result.Cycles).To(Equal(uint64(8)),
			"a peer-supplied 16B block moves in 2 cycles per word")
		Expect(b.CacheToCache()).To(Equal(uint64(1)))
	})

	It("should not snoop the requester", func() {
		peer2.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{})

		b.Issue(BusRd, 0x2000, 1)
	})

	It("should count one invalidation per invalidated peer", func() {
		peer1.EXPECT().Snoop(gomock.Any()).
			Return(SnoopResult{HadCopy: true, Invalidated: true})
		peer2.EXPECT().Snoop(gomock.Any()).
			Return(SnoopResult{HadCopy: true, Invalidated: true})

		result := b.Issue(BusUpgr, 0x3000, 0)

		Expect(result.Cycles).To(Equal(uint64(2)))
		Expect(b.Invalidations()).To(Equal(uint64(2)))
		Expect(b.TrafficBytes()).To(BeZero(),
			"upgrades move no data")
	})

	It("should not snoop peers on a flush", func() {
		result := b.Issue(Flush, 0x4000, 0)

		Expect(result.Cycles).To(Equal(uint64(100)))
		Expect(b.TrafficBytes()).To(Equal(uint64(16)))
	})

	It("should queue transactions behind a busy bus", func() {
		peer1.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{}).Times(2)
		peer2.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{}).Times(2)

		b.Issue(BusRd, 0x2000, 0)
		Expect(b.BusyUntil()).To(Equal(uint64(110)))

		b.Issue(BusRdX, 0x3000, 0)
		Expect(b.BusyUntil()).To(Equal(uint64(210)),
			"the second transaction starts when the first ends")
	})

	It("should start immediately once the bus is idle again", func() {
		b.busyUntil = 5

		b.Issue(Flush, 0x4000, 0)

		Expect(b.BusyUntil()).To(Equal(uint64(110)))
	})

	It("should invoke transaction hooks with the aggregated result", func() {
		recorder := &txRecorder{}
		b.AcceptHook(recorder)

		peer1.EXPECT().Snoop(gomock.Any()).
			Return(SnoopResult{HadCopy: true})
		peer2.EXPECT().Snoop(gomock.Any()).Return(SnoopResult{})

		b.Issue(BusRd, 0x2000, 0)

		Expect(recorder.ctxs).To(HaveLen(1))
		Expect(recorder.ctxs[0].Pos).To(Equal(HookPosTxIssued))

		tx := recorder.ctxs[0].Item.(Transaction)
		Expect(tx.Kind).To(Equal(BusRd))
		Expect(tx.BlockAddr).To(Equal(uint32(0x2000)))
		Expect(tx.ID).NotTo(BeEmpty())

		result := recorder.ctxs[0].Detail.(Result)
		Expect(result.Shared).To(BeTrue())
	})
})
