package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("HookableBase", func() {
	var (
		domain *HookableBase
		pos    *HookPos
	)

	BeforeEach(func() {
		domain = NewHookableBase()
		pos = &HookPos{Name: "TestPos"}
	})

	It("should invoke every registered hook", func() {
		hook1 := &recordingHook{}
		hook2 := &recordingHook{}
		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)

		ctx := HookCtx{Domain: domain, Pos: pos, Item: 12}
		domain.InvokeHook(ctx)

		Expect(hook1.ctxs).To(HaveLen(1))
		Expect(hook2.ctxs).To(HaveLen(1))
		Expect(hook1.ctxs[0].Item).To(Equal(12))
		Expect(hook1.ctxs[0].Pos).To(BeIdenticalTo(pos))
	})

	It("should do nothing without hooks", func() {
		domain.InvokeHook(HookCtx{Domain: domain, Pos: pos})
	})
})
