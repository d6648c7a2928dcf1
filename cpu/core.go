// Package cpu models the processor cores that replay memory traces against
// their private L1 caches.
package cpu

import (
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/sim"
	"github.com/sarchlab/mesisim/trace"
)

// A Core replays one trace, one access per cycle, blocking whenever its
// cache reports a miss. An instruction that misses is consumed when the
// miss is issued but only counted as executed when the miss resolves.
type Core struct {
	coreID     int
	trace      *trace.Reader
	cache      *cache.Comp
	timeTeller sim.TimeTeller

	blocked  bool
	finished bool

	cyclesBlocked uint64
	instructions  uint64
	finishCycle   uint64
}

// NewCore creates a Core that replays tr against c.
func NewCore(
	coreID int,
	tr *trace.Reader,
	c *cache.Comp,
	tt sim.TimeTeller,
) *Core {
	return &Core{
		coreID:     coreID,
		trace:      tr,
		cache:      c,
		timeTeller: tt,
	}
}

// Step lets the core attempt its next access in the current cycle. A
// blocked core only accumulates idle time.
func (c *Core) Step() {
	if c.finished {
		return
	}

	if c.blocked {
		c.cyclesBlocked++
		return
	}

	inst, ok := c.trace.Next()
	if !ok {
		c.finished = true
		c.finishCycle = c.timeTeller.CurrentCycle()
		return
	}

	var hit bool
	switch inst.Op {
	case trace.OpRead:
		hit = c.cache.Read(inst.Addr)
	case trace.OpWrite:
		hit = c.cache.Write(inst.Addr)
	}

	if hit {
		c.instructions++
	} else {
		c.blocked = true
	}
}

// Unblock is called by the scheduler once the cache reports the pending
// miss resolved. The access that missed counts as executed here, so a miss
// is never counted twice.
func (c *Core) Unblock() {
	c.instructions++
	c.blocked = false
}

// ID returns the core id.
func (c *Core) ID() int {
	return c.coreID
}

// Cache returns the core's L1 cache.
func (c *Core) Cache() *cache.Comp {
	return c.cache
}

// Blocked returns true while the core waits on a miss.
func (c *Core) Blocked() bool {
	return c.blocked
}

// Done returns true once the trace is exhausted and no miss is pending.
func (c *Core) Done() bool {
	return c.finished && !c.blocked
}

// CyclesBlocked returns the number of cycles spent waiting on misses.
func (c *Core) CyclesBlocked() uint64 {
	return c.cyclesBlocked
}

// InstructionsExecuted returns the number of completed accesses.
func (c *Core) InstructionsExecuted() uint64 {
	return c.instructions
}

// FinishCycle returns the cycle at which the core ran out of trace, or 0 if
// it is still running.
func (c *Core) FinishCycle() uint64 {
	return c.finishCycle
}
